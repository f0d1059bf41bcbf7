package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/domain/user"
)

const maxBodySize = 1 << 20

// UserSyncer mirrors identity-provider users locally.
type UserSyncer interface {
	Sync(ctx context.Context, req user.SyncRequest) (*user.User, error)
	Delete(ctx context.Context, id string) error
}

type event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type emailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type userData struct {
	ID                    string         `json:"id"`
	EmailAddresses        []emailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
}

// primaryEmail returns the primary address, else the first one.
func (d userData) primaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID != "" && e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

// Handler receives user lifecycle events from the identity provider.
type Handler struct {
	verifier *Verifier
	users    UserSyncer
	clock    clock.Clock
	logger   *slog.Logger
}

// NewHandler creates a webhook handler. clk may be nil.
func NewHandler(verifier *Verifier, users UserSyncer, clk clock.Clock, logger *slog.Logger) *Handler {
	if clk == nil {
		clk = clock.Real(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{verifier: verifier, users: users, clock: clk, logger: logger}
}

// ServeHTTP handles a single delivery.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.logger.Error("webhook: failed to read body", "error", err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(r.Header, body, h.clock.Now()); err != nil {
		h.logger.Warn("webhook: verification failed",
			"error", err,
			"remote_addr", r.RemoteAddr,
		)
		http.Error(w, "Error occurred", http.StatusBadRequest)
		return
	}

	var evt event
	if err := json.Unmarshal(body, &evt); err != nil {
		h.logger.Warn("webhook: malformed payload", "error", err)
		http.Error(w, "Error occurred", http.StatusBadRequest)
		return
	}

	deliveryID := r.Header.Get(HeaderID)
	h.logger.Info("webhook received", "event_type", evt.Type, "delivery_id", deliveryID)

	switch evt.Type {
	case "user.created", "user.updated":
		var data userData
		if err := json.Unmarshal(evt.Data, &data); err != nil || data.ID == "" {
			h.logger.Warn("webhook: malformed user payload", "event_type", evt.Type, "error", err)
			http.Error(w, "Error occurred", http.StatusBadRequest)
			return
		}
		_, err := h.users.Sync(r.Context(), user.SyncRequest{
			ID:        data.ID,
			Email:     data.primaryEmail(),
			FirstName: data.FirstName,
			LastName:  data.LastName,
		})
		if err != nil {
			h.logger.Error("webhook: failed to sync user", "user_id", data.ID, "error", err)
			http.Error(w, "Error syncing user", http.StatusInternalServerError)
			return
		}

	case "user.deleted":
		var data userData
		if err := json.Unmarshal(evt.Data, &data); err != nil || data.ID == "" {
			h.logger.Warn("webhook: malformed user payload", "event_type", evt.Type, "error", err)
			http.Error(w, "Error occurred", http.StatusBadRequest)
			return
		}
		if err := h.users.Delete(r.Context(), data.ID); err != nil {
			h.logger.Error("webhook: failed to delete user", "user_id", data.ID, "error", err)
			http.Error(w, "Error deleting user", http.StatusInternalServerError)
			return
		}

	default:
		h.logger.Debug("webhook: unhandled event type, ignoring", "event_type", evt.Type)
	}

	w.WriteHeader(http.StatusOK)
}
