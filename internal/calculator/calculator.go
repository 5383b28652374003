package calculator // Чистое ядро калькулятора: разбор операндов, проверки и сама операция

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Outcome - результат одного вычисления.
// Err == nil означает успех, и тогда Value содержит результат.
// Иначе Err содержит класс и сообщение ошибки, а Value равно 0.
type Outcome struct {
	Value float64
	Err   *CalculationError
}

// OK сообщает, успешно ли завершилось вычисление.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Evaluate выполняет вычисление над двумя текстовыми операндами и символом оператора.
// Функция чистая: не логирует, не имеет состояния, одинаковые входы дают одинаковый Outcome.
func Evaluate(operandA, operandB, operator string) Outcome {
	value, err := Calculate(operandA, operandB, operator)
	if err != nil {
		var calcErr *CalculationError
		if errors.As(err, &calcErr) {
			return Outcome{Err: calcErr}
		}
		// Ошибка другого типа считается неклассифицированной.
		return Outcome{Err: &CalculationError{Kind: KindUnclassified, Message: err.Error()}}
	}
	return Outcome{Value: value}
}

// Calculate разбирает операнды, проверяет деление на ноль и выполняет операцию.
// Порядок проверок: операнды, затем деление на ноль, затем сам оператор.
// Любая возвращаемая ошибка имеет тип *CalculationError.
func Calculate(operandA, operandB, operator string) (float64, error) {
	// Обрезаем пробелы по краям, как при чтении полей формы
	a := strings.TrimSpace(operandA)
	b := strings.TrimSpace(operandB)

	// Проверка операндов
	arg1, ok1 := parseOperand(a)
	arg2, ok2 := parseOperand(b)
	if !ok1 || !ok2 {
		return 0.0, invalidOperandError(a, b)
	}

	// Деление на ноль проверяется до оператора, но только для известного "/"
	op, known := ParseOperator(operator)
	if known && op == OperatorDivide && arg2 == 0 {
		return 0.0, divisionByZeroError()
	}
	if !known {
		// В сообщении оператор в том виде, в каком он пришел
		return 0.0, unknownOperatorError(operator)
	}

	return CalculateOperation(arg1, arg2, op)
}

// CalculateOperation выполняет арифметическую операцию над двумя числами.
// Результат не округляется (обычная арифметика float64).
// Возвращает ошибку при делении на ноль или неизвестной операции.
func CalculateOperation(arg1, arg2 float64, op Operator) (float64, error) {
	switch op {
	case OperatorAdd:
		return arg1 + arg2, nil
	case OperatorSubtract:
		return arg1 - arg2, nil
	case OperatorMultiply:
		return arg1 * arg2, nil
	case OperatorDivide:
		// -0 тоже равен нулю.
		if arg2 == 0 {
			return 0.0, divisionByZeroError()
		}
		return arg1 / arg2, nil
	default:
		return 0.0, unknownOperatorError(op.String())
	}
}

// parseOperand разбирает уже обрезанный текст операнда.
// Пустая строка, NaN, бесконечности и переполнение не считаются числом.
func parseOperand(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatValue превращает результат в строку для отображения:
// кратчайшая десятичная запись ("6", "0.5", "0.30000000000000004"),
// экспоненциальная запись для очень больших и очень маленьких чисел ("1e+21", "1e-7"),
// "Infinity" / "-Infinity" при переполнении.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	// Границы экспоненциальной записи: [1e-6, 1e21)
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go пишет "1e-07", убираем ведущие нули порядка
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
