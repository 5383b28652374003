package grpcserver

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	localModels "calculator_lab/internal/models"
)

// Client - клиент CalculatorService.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient создает клиента для addr. Без опций соединение нешифрованное.
// Соединение устанавливается лениво, при первом вызове.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	// Опции вызывающего идут после insecure и могут его переопределить
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Evaluate отправляет одну попытку вычисления на сервер.
// Ошибка означает сбой транспорта или некорректный запрос; ошибки вычисления приходят в ответе.
func (c *Client) Evaluate(ctx context.Context, req localModels.CalculationRequest) (localModels.CalculationResponse, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, EvaluateMethod, requestToStruct(req), out); err != nil {
		return localModels.CalculationResponse{}, fmt.Errorf("evaluate: %w", err)
	}
	return responseFromStruct(out), nil
}

// Close закрывает соединение.
func (c *Client) Close() error {
	return c.conn.Close()
}
