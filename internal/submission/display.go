package submission

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Display - поверхность отображения результата.
// Каждая отправка перезаписывает ее ровно один раз.
type Display interface {
	Show(text string)
}

// Surface хранит последнюю отрисованную строку.
// Ее могут разделять параллельные HTTP и gRPC запросы, поэтому доступ под мьютексом.
type Surface struct {
	mu   sync.RWMutex
	text string
}

// Show заменяет текущую строку новой.
func (s *Surface) Show(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text возвращает последнюю отрисованную строку ("" до первой отправки).
func (s *Surface) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// WriterDisplay выводит каждую строку отдельной строкой в Writer (например, os.Stdout).
type WriterDisplay struct {
	W io.Writer
}

// Show пишет строку и перевод строки. Ошибка записи только логируется.
func (d WriterDisplay) Show(text string) {
	if _, err := fmt.Fprintln(d.W, text); err != nil {
		log.Printf("Ошибка вывода результата: %v", err)
	}
}

// discardDisplay используется, если Display не задан.
type discardDisplay struct{}

func (discardDisplay) Show(string) {}
