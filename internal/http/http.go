package http // Вспомогательные функции для JSON-ответов HTTP API

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// maxBodyBytes - предел размера тела запроса. Запрос калькулятора - три коротких строки.
const maxBodyBytes = 1 << 16

// RespondJSON: Отправляет ответ в формате JSON с указанным статус кодом.
// Тело сначала полностью маршалируется, и только потом пишутся заголовки,
// чтобы при ошибке маршалирования можно было ответить 500.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload) // Маршалируем payload в JSON
	if err != nil {
		log.Printf("Ошибка при маршалировании JSON ответа: %v", err)
		writeJSON(w, http.StatusInternalServerError, []byte(`{"error":"Internal Server Error"}`))
		return
	}
	writeJSON(w, status, response) // Пишем заголовки и тело
}

// RespondError: Отправляет ошибку в формате {"error": "сообщение"}.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message}) // Используем RespondJSON для отправки JSON с ошибкой
}

// DecodeJSON читает тело запроса в dst. Неизвестные поля и лишние данные после объекта - ошибка.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)) // Ограничиваем размер тела
	dec.DisallowUnknownFields()                                  // Лишние поля - ошибка клиента
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	// После объекта не должно быть других данных
	if dec.More() {
		return fmt.Errorf("failed to decode request body: unexpected data after JSON object")
	}
	return nil
}

// writeJSON: Записывает готовое JSON тело с указанным статус кодом.
func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json") // Устанавливаем Content-Type
	w.WriteHeader(status)                              // Устанавливаем статус код
	if _, err := w.Write(body); err != nil {
		log.Printf("Ошибка при записи HTTP ответа: %v", err)
	}
}
