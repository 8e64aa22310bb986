package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/sports-reconciler/internal/platform/logging"
	"github.com/riskibarqy/sports-reconciler/internal/usecase"
)

// maxRequestBodyBytes bounds a single reconcile batch body.
const maxRequestBodyBytes = 16 << 20

type Handler struct {
	reconcileService *usecase.ReconcileService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(reconcileService *usecase.ReconcileService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		reconcileService: reconcileService,
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
