package fault

import (
	"context"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	localHTTP "calculator_lab/internal/http"
	localModels "calculator_lab/internal/models"
)

// Middleware перехватывает панику, вышедшую из HTTP-обработчика.
// Вместо стандартного поведения net/http (дамп стека и оборванное соединение)
// клиент получает 500 {"error": "An unexpected error occurred."}.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			// http.ErrAbortHandler - штатный способ прервать ответ, его пробрасываем дальше.
			if v == http.ErrAbortHandler {
				panic(v)
			}
			ReportPanic(v)
			localHTTP.RespondError(w, http.StatusInternalServerError, localModels.UnexpectedDisplay)
		}()
		next.ServeHTTP(w, r)
	})
}

// UnaryServerInterceptor делает то же для unary gRPC методов: паника становится codes.Internal.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if v := recover(); v != nil {
				ReportPanic(v)
				resp = nil
				err = status.Error(codes.Internal, localModels.UnexpectedDisplay)
			}
		}()
		return next(ctx, req)
	}
}
