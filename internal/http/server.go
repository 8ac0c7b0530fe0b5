package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"bahtbot/internal/bot"
	"bahtbot/internal/line"
	applog "bahtbot/internal/log"
)

// Server serves the LINE webhook. All real work happens in the bot
// handler; this layer only verifies and decodes the webhook envelope.
type Server struct {
	http.Server
	line    *line.Client
	handler *bot.Handler
	logger  *applog.Logger
}

// NewServer configures routes and timeouts, returning a ready-to-run
// http.Server.
func NewServer(addr string, lineClient *line.Client, handler *bot.Handler, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        applog.Middleware(logger)(mux),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		line:    lineClient,
		handler: handler,
		logger:  logger.WithComponent(applog.ComponentHTTP),
	}

	mux.HandleFunc("/callback", s.handleCallback)
	mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// handleCallback verifies the webhook signature and feeds every text
// message event to the bot handler. Events are processed before the 200
// response so the reply tokens are consumed while still fresh.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events, err := s.line.ParseRequest(r)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			s.logger.WarnContext(r.Context(), "Webhook signature invalid",
				applog.FieldClientIP, r.RemoteAddr)
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}
		s.logger.WarnContext(r.Context(), "Webhook body malformed", applog.FieldError, err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	for _, event := range events {
		if event.Type != linebot.EventTypeMessage {
			continue
		}
		message, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			continue
		}
		s.handler.HandleTextMessage(r.Context(), event.ReplyToken, message.Text)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
