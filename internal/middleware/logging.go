// internal/middleware/logging.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware" // chiのミドルウェアヘルパーを使う
)

// logCtxKey はコンテキストにリクエストスコープのロガーを格納するためのキーです。
type logCtxKey struct{}

// GetLogger はコンテキストからリクエストスコープのロガーを取り出します。
// ミドルウェアを通っていない場合はデフォルトロガーを返します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// NewStructuredLogger はslogでリクエストログを出力するミドルウェアを返します。
func NewStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			// WrapResponseWriter を使ってレスポンス情報を取得
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			requestID := middleware.GetReqID(r.Context())

			// リクエストスコープのロガーを作成し、コンテキストに載せる
			reqLogger := logger.With(slog.String("request_id", requestID))
			ctx := context.WithValue(r.Context(), logCtxKey{}, reqLogger)

			// リクエスト完了後にログを出力
			defer func() {
				// 5xxはError、4xxはWarn、それ以外はInfo
				level := slog.LevelInfo
				if ww.Status() >= 500 {
					level = slog.LevelError
				} else if ww.Status() >= 400 {
					level = slog.LevelWarn
				}

				latency := time.Since(t1)
				attrs := []slog.Attr{
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes_out", ww.BytesWritten()),
					slog.Duration("latency_ms", latency),
				}

				reqLogger.LogAttrs(ctx, level, "Request completed", attrs...)
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
