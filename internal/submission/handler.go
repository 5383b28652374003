// Package submission - граница обработки одной отправки формы калькулятора.
//
// Handler вызывает вычислитель и сам отвечает за отображение и логирование:
// успех выводится числом, классифицированная ошибка - как "Error: <сообщение>",
// любая другая ошибка или паника - общим сообщением "An unexpected error occurred.".
// Строка "Calculation attempt finished" пишется в лог ровно один раз на каждый вызов Submit.
package submission

import (
	"context"
	"errors"
	"log"
	"math"
	"runtime/debug"

	"github.com/google/uuid"

	"calculator_lab/internal/calculator"
	"calculator_lab/internal/fault"
	localModels "calculator_lab/internal/models"
)

// Evaluator - сигнатура вычислителя. По умолчанию calculator.Calculate.
// Классифицированные ошибки - *calculator.CalculationError, всё остальное считается непредвиденным.
type Evaluator func(operandA, operandB, operator string) (float64, error)

// FinishedMessage пишется в лог после каждой попытки вычисления.
const FinishedMessage = "Calculation attempt finished (try/catch/finally)."

// Handler обрабатывает отправки. Безопасен для параллельного использования,
// если безопасны его Display и логгеры (Surface и *log.Logger безопасны).
type Handler struct {
	evaluate    Evaluator
	display     Display
	logger      *log.Logger // Обычный поток: завершение попытки
	errorLogger *log.Logger // Поток ошибок: классифицированные и неклассифицированные ошибки
}

// Option настраивает Handler.
type Option func(*Handler)

// WithEvaluator подменяет вычислитель.
func WithEvaluator(e Evaluator) Option {
	return func(h *Handler) { h.evaluate = e }
}

// WithDisplay задает поверхность отображения.
func WithDisplay(d Display) Option {
	return func(h *Handler) { h.display = d }
}

// WithLogger задает логгер для обоих потоков.
func WithLogger(l *log.Logger) Option {
	return func(h *Handler) {
		h.logger = l
		h.errorLogger = l
	}
}

// WithErrorLogger задает отдельный логгер для потока ошибок.
func WithErrorLogger(l *log.Logger) Option {
	return func(h *Handler) { h.errorLogger = l }
}

// NewHandler создает Handler. Без опций: calculator.Calculate, вывод отбрасывается, стандартный логгер.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		evaluate:    calculator.Calculate,
		display:     discardDisplay{},
		logger:      log.Default(),
		errorLogger: log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Submit выполняет одну попытку вычисления и возвращает отрисованный результат.
// Submit никогда не паникует из-за вычислителя: паника превращается в Unclassified.
func (h *Handler) Submit(ctx context.Context, req localModels.CalculationRequest) (resp localModels.CalculationResponse) {
	attemptID := AttemptIDFromContext(ctx)
	resp.AttemptID = attemptID

	// Аналог finally: выполняется при любом исходе, в том числе после паники.
	defer func() {
		h.display.Show(resp.Display)
		h.logger.Printf("[%s] %s", attemptID, FinishedMessage)
	}()

	defer func() {
		if v := recover(); v != nil {
			resp = h.unexpected(attemptID, &fault.PanicError{Value: v, Stack: debug.Stack()})
		}
	}()

	value, err := h.evaluate(req.OperandA, req.OperandB, req.Operator)
	if err != nil {
		var calcErr *calculator.CalculationError
		if errors.As(err, &calcErr) && calcErr.Kind != calculator.KindUnclassified {
			return h.classified(attemptID, calcErr)
		}
		return h.unexpected(attemptID, err)
	}

	resp.OK = true
	resp.Display = calculator.FormatValue(value)
	// JSON не умеет передавать бесконечности, для них остается только Display.
	if !math.IsInf(value, 0) && !math.IsNaN(value) {
		resp.Value = &value
	}
	return resp
}

func (h *Handler) classified(attemptID string, err *calculator.CalculationError) localModels.CalculationResponse {
	h.errorLogger.Printf("[%s] CalculationError thrown: %s: %s", attemptID, err.Kind, err.Message)
	return localModels.CalculationResponse{
		AttemptID: attemptID,
		Display:   localModels.ErrorDisplayPrefix + err.Message,
		Kind:      err.Kind.String(),
		Message:   err.Message,
	}
}

func (h *Handler) unexpected(attemptID string, err error) localModels.CalculationResponse {
	h.errorLogger.Printf("[%s] Unexpected error (%T): %v", attemptID, err, err)
	return localModels.CalculationResponse{
		AttemptID: attemptID,
		Display:   localModels.UnexpectedDisplay,
		Kind:      calculator.KindUnclassified.String(),
		Message:   localModels.UnexpectedDisplay,
	}
}

type attemptIDKey struct{}

// ContextWithAttemptID кладет ID попытки в контекст (например, из заголовка X-Attempt-ID).
func ContextWithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptIDKey{}, id)
}

// AttemptIDFromContext возвращает ID попытки из контекста или новый UUID.
func AttemptIDFromContext(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(attemptIDKey{}).(string); ok && id != "" {
			return id
		}
	}
	return uuid.NewString()
}
