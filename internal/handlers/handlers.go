package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"calculator_lab/internal/fault"
	localHTTP "calculator_lab/internal/http"
	localModels "calculator_lab/internal/models"
	"calculator_lab/internal/submission"
)

const (
	// AttemptIDHeader: клиент может передать свой ID попытки (UUID), иначе он генерируется.
	AttemptIDHeader = "X-Attempt-ID"
	// apiPrefix - общий префикс маршрутов API.
	apiPrefix = "/api/v1"
	// counterName - имя демо-кнопки в подписи счетчика.
	counterName = "Counter"
)

// Submitter - то, что умеет обработать одну отправку формы. Реализуется *submission.Handler.
type Submitter interface {
	Submit(ctx context.Context, req localModels.CalculationRequest) localModels.CalculationResponse
}

// Counter: Единственный именованный счетчик нажатий демо-кнопки.
// Только растет; безопасен для параллельных запросов.
type Counter struct {
	n atomic.Int64
}

// Increment увеличивает счетчик и возвращает новое значение.
func (c *Counter) Increment() int64 {
	return c.n.Add(1)
}

// Value возвращает текущее значение.
func (c *Counter) Value() int64 {
	return c.n.Load()
}

// APIService: HTTP API калькулятора и его зависимости.
type APIService struct {
	Submitter Submitter
	Surface   *submission.Surface // Общая поверхность отображения (последний результат)
	Counter   *Counter

	// TriggerFault запускает асинхронную ошибку вне границы отправки. По умолчанию fault.Go.
	TriggerFault func(fn func())
}

// NewAPIService: Конструктор APIService.
// Submitter должен выводить результат на тот же surface, чтобы GET /display его видел.
func NewAPIService(submitter Submitter, surface *submission.Surface) *APIService {
	return &APIService{
		Submitter:    submitter,
		Surface:      surface,
		Counter:      &Counter{},
		TriggerFault: fault.Go,
	}
}

// NewRouter собирает маршруты API. Весь роутер обернут в fault.Middleware.
// Маршруты регистрируются на корневом роутере с полными путями:
// для подроутера mux отвечает 404 вместо 405 при неверном методе.
func (s *APIService) NewRouter() http.Handler {
	router := mux.NewRouter()

	// Маршруты API v1
	router.HandleFunc(apiPrefix+"/calculate", s.CalculateHandler).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/display", s.DisplayHandler).Methods(http.MethodGet)
	router.HandleFunc(apiPrefix+"/counter", s.CounterHandler).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/fault", s.FaultHandler).Methods(http.MethodPost)

	// Служебные маршруты
	router.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)

	return fault.Middleware(router)
}

// CalculateHandler: POST /api/v1/calculate.
// Любой исход вычисления (успех или ошибка любого класса) - это 200 с CalculationResponse;
// 400 только если тело запроса не разобрать.
func (s *APIService) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// Декодируем тело запроса
	var req localModels.CalculationRequest
	if err := localHTTP.DecodeJSON(r, &req); err != nil {
		log.Printf("Ошибка при декодировании тела запроса вычисления: %v", err)
		localHTTP.RespondError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	// ID попытки из заголовка, если клиент его передал
	ctx := r.Context()
	if id := r.Header.Get(AttemptIDHeader); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			localHTTP.RespondError(w, http.StatusBadRequest, AttemptIDHeader+" must be a UUID")
			return
		}
		ctx = submission.ContextWithAttemptID(ctx, id)
	}

	// Вычисление и отрисовка результата
	resp := s.Submitter.Submit(ctx, req)
	localHTTP.RespondJSON(w, http.StatusOK, resp)
}

// DisplayHandler: GET /api/v1/display - последняя отрисованная строка.
func (s *APIService) DisplayHandler(w http.ResponseWriter, r *http.Request) {
	localHTTP.RespondJSON(w, http.StatusOK, map[string]string{"display": s.Surface.Text()})
}

// CounterHandler: POST /api/v1/counter - демо-кнопка счетчика.
func (s *APIService) CounterHandler(w http.ResponseWriter, r *http.Request) {
	n := s.Counter.Increment()
	label := fmt.Sprintf("%s has been clicked %d times", counterName, n)
	log.Println(label)
	localHTTP.RespondJSON(w, http.StatusOK, localModels.CounterResponse{Count: n, Label: label})
}

// FaultHandler: POST /api/v1/fault - демо "глобальной ошибки".
// Ошибка возникает асинхронно, вне границы отправки, и ловится только обработчиком процесса.
func (s *APIService) FaultHandler(w http.ResponseWriter, r *http.Request) {
	s.TriggerFault(func() {
		var notARealFunction func()
		notARealFunction()
	})
	localHTTP.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "fault triggered"})
}

// HealthHandler: GET /health.
func (s *APIService) HealthHandler(w http.ResponseWriter, r *http.Request) {
	localHTTP.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
