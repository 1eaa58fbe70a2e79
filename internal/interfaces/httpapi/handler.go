package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	tournamentService *usecase.TournamentService
	teamService       *usecase.TeamService
	playerService     *usecase.PlayerService
	matchService      *usecase.MatchService
	reconcileService  *usecase.ReconcileService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	reconcileService *usecase.ReconcileService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		teamService:       teamService,
		playerService:     playerService,
		matchService:      matchService,
		reconcileService:  reconcileService,
		logger:            logger,
		validator:         newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %w", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(r.Context(), dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}
