package calculator

// Operator - одна из четырех поддерживаемых арифметических операций.
type Operator int

const (
	OperatorAdd      Operator = iota + 1 // "+"
	OperatorSubtract                     // "-"
	OperatorMultiply                     // "*"
	OperatorDivide                       // "/"
)

var operatorSymbols = map[string]Operator{
	"+": OperatorAdd,
	"-": OperatorSubtract,
	"*": OperatorMultiply,
	"/": OperatorDivide,
}

// ParseOperator сопоставляет символ оператора с Operator.
// Символ сравнивается как есть, без обрезки пробелов.
func ParseOperator(symbol string) (Operator, bool) {
	op, ok := operatorSymbols[symbol]
	return op, ok
}

// String возвращает символ оператора ("+", "-", "*", "/").
func (o Operator) String() string {
	switch o {
	case OperatorAdd:
		return "+"
	case OperatorSubtract:
		return "-"
	case OperatorMultiply:
		return "*"
	case OperatorDivide:
		return "/"
	default:
		return "?"
	}
}

// Name возвращает название операции: add, subtract, multiply, divide.
func (o Operator) Name() string {
	switch o {
	case OperatorAdd:
		return "add"
	case OperatorSubtract:
		return "subtract"
	case OperatorMultiply:
		return "multiply"
	case OperatorDivide:
		return "divide"
	default:
		return "unknown"
	}
}
