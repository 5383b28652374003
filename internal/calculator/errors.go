package calculator

import "fmt"

// Kind - класс ошибки вычисления.
// Каждая ошибка вычисления относится ровно к одному классу.
type Kind int

const (
	KindInvalidOperand  Kind = iota + 1 // Операнд не является конечным числом
	KindDivisionByZero                  // Деление на ноль
	KindUnknownOperator                 // Оператор вне набора "+", "-", "*", "/"
	KindUnclassified                    // Любая другая (непредвиденная) ошибка
)

// String возвращает стабильное имя класса. Эти имена уходят в JSON и gRPC ответы.
func (k Kind) String() string {
	switch k {
	case KindInvalidOperand:
		return "InvalidOperand"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindUnknownOperator:
		return "UnknownOperator"
	case KindUnclassified:
		return "Unclassified"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// CalculationError: ожидаемая (классифицированная) ошибка вычисления.
// Message - текст, который показывается пользователю после префикса "Error: ".
type CalculationError struct {
	Kind    Kind
	Message string
}

// Error возвращает сообщение без префикса "Error: ".
func (e *CalculationError) Error() string {
	return e.Message
}

// Is позволяет сравнивать ошибку с сентинелами ErrInvalidOperand и т.д.
// через errors.Is: совпадение определяется только классом.
func (e *CalculationError) Is(target error) bool {
	t, ok := target.(*CalculationError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Сентинелы для errors.Is. Сообщение у них пустое, сравнивается только Kind.
var (
	ErrInvalidOperand  = &CalculationError{Kind: KindInvalidOperand}
	ErrDivisionByZero  = &CalculationError{Kind: KindDivisionByZero}
	ErrUnknownOperator = &CalculationError{Kind: KindUnknownOperator}
)

func invalidOperandError(a, b string) *CalculationError {
	return &CalculationError{
		Kind:    KindInvalidOperand,
		Message: fmt.Sprintf("Both inputs must be valid numbers. Received: [%s, %s]", a, b),
	}
}

func divisionByZeroError() *CalculationError {
	return &CalculationError{Kind: KindDivisionByZero, Message: "Cannot divide by zero."}
}

func unknownOperatorError(op string) *CalculationError {
	return &CalculationError{
		Kind:    KindUnknownOperator,
		Message: fmt.Sprintf("Unknown operator \"%s\".", op),
	}
}
