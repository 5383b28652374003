package models

// CalculationRequest: Одна отправка "формы" калькулятора.
// Операнды передаются текстом, как их ввел пользователь; разбор делает калькулятор.
type CalculationRequest struct {
	OperandA string `json:"a"`        // Первый операнд (текст)
	OperandB string `json:"b"`        // Второй операнд (текст)
	Operator string `json:"operator"` // Символ оператора: "+", "-", "*", "/"
}

// Строки отображения, которые видит пользователь.
const (
	ErrorDisplayPrefix = "Error: "                       // Префикс для классифицированных ошибок
	UnexpectedDisplay  = "An unexpected error occurred." // Текст для всех неклассифицированных ошибок
)

// CalculationResponse: Результат одной отправки.
// Display - ровно та строка, которая выводится на поверхность отображения.
type CalculationResponse struct {
	AttemptID string   `json:"attempt_id"`        // ID попытки (UUID), тот же, что в логах
	Display   string   `json:"display"`           // Отрисованный результат или сообщение об ошибке
	OK        bool     `json:"ok"`                // true, если вычисление успешно
	Value     *float64 `json:"value,omitempty"`   // Числовой результат; nil при ошибке
	Kind      string   `json:"kind,omitempty"`    // Класс ошибки (InvalidOperand, DivisionByZero, UnknownOperator, Unclassified)
	Message   string   `json:"message,omitempty"` // Сообщение ошибки без префикса "Error: "
}

// CounterResponse: Ответ на нажатие демо-счетчика.
type CounterResponse struct {
	Count int64  `json:"count"`
	Label string `json:"label"`
}
