package grpcserver

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	localModels "calculator_lab/internal/models"
)

// Поля сообщений на проводе совпадают с JSON-тегами models.
const (
	fieldOperandA  = "a"
	fieldOperandB  = "b"
	fieldOperator  = "operator"
	fieldAttemptID = "attempt_id"
	fieldDisplay   = "display"
	fieldOK        = "ok"
	fieldValue     = "value"
	fieldKind      = "kind"
	fieldMessage   = "message"
)

// requestToStruct кодирует запрос для отправки.
func requestToStruct(req localModels.CalculationRequest) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldOperandA: structpb.NewStringValue(req.OperandA),
		fieldOperandB: structpb.NewStringValue(req.OperandB),
		fieldOperator: structpb.NewStringValue(req.Operator),
	}}
}

// requestFromStruct декодирует запрос. Все три поля обязательны и должны быть строками:
// пустая строка допустима (ее отклонит калькулятор), отсутствующее поле - нет.
func requestFromStruct(s *structpb.Struct) (localModels.CalculationRequest, error) {
	var req localModels.CalculationRequest
	var err error
	if req.OperandA, err = stringField(s, fieldOperandA); err != nil {
		return req, err
	}
	if req.OperandB, err = stringField(s, fieldOperandB); err != nil {
		return req, err
	}
	if req.Operator, err = stringField(s, fieldOperator); err != nil {
		return req, err
	}
	return req, nil
}

// stringField: Достает обязательное строковое поле из Struct.
func stringField(s *structpb.Struct, name string) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("field %q is required", name)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", name)
	}
	return sv.StringValue, nil
}

// responseToStruct кодирует ответ. Поля value, kind и message пишутся только если заданы.
func responseToStruct(resp localModels.CalculationResponse) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldAttemptID: structpb.NewStringValue(resp.AttemptID),
		fieldDisplay:   structpb.NewStringValue(resp.Display),
		fieldOK:        structpb.NewBoolValue(resp.OK),
	}
	if resp.Value != nil {
		fields[fieldValue] = structpb.NewNumberValue(*resp.Value)
	}
	if resp.Kind != "" {
		fields[fieldKind] = structpb.NewStringValue(resp.Kind)
	}
	if resp.Message != "" {
		fields[fieldMessage] = structpb.NewStringValue(resp.Message)
	}
	return &structpb.Struct{Fields: fields}
}

// responseFromStruct декодирует ответ сервера.
func responseFromStruct(s *structpb.Struct) localModels.CalculationResponse {
	f := s.GetFields()
	resp := localModels.CalculationResponse{
		AttemptID: f[fieldAttemptID].GetStringValue(),
		Display:   f[fieldDisplay].GetStringValue(),
		OK:        f[fieldOK].GetBoolValue(),
		Kind:      f[fieldKind].GetStringValue(),
		Message:   f[fieldMessage].GetStringValue(),
	}
	// value нет при ошибке и при бесконечном результате
	if v, ok := f[fieldValue]; ok {
		n := v.GetNumberValue()
		resp.Value = &n
	}
	return resp
}
