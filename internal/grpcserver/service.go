package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Имена сервиса и метода на проводе.
// Сообщения - google.protobuf.Struct, поэтому сгенерированный код не нужен.
const (
	ServiceName    = "calculator.v1.CalculatorService"
	EvaluateMethod = "/" + ServiceName + "/Evaluate"
)

// CalculatorServiceServer - серверная сторона CalculatorService.
type CalculatorServiceServer interface {
	// Evaluate принимает {"a", "b", "operator"} и возвращает поля CalculationResponse.
	Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCalculatorServiceServer регистрирует реализацию на gRPC сервере.
func RegisterCalculatorServiceServer(s grpc.ServiceRegistrar, srv CalculatorServiceServer) {
	s.RegisterService(&CalculatorServiceDesc, srv)
}

// CalculatorServiceDesc - описание сервиса для grpc.Server.
var CalculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Evaluate",
			Handler:    evaluateHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

func evaluateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServiceServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EvaluateMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalculatorServiceServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
