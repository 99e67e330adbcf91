/*
Copyright 2025 the MrHotel Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/mrhotel/api-tests/pkg/openapi"
)

const sessionKeyLength = 32

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// AdminCode must accompany the first administrator registration.
	AdminCode string

	// SessionKey signs session tokens, a random key is used when empty.
	SessionKey string

	// SessionTTL is how long a login lasts.
	SessionTTL time.Duration
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.AdminCode, "admin-code", "admin-secret-code", "Code required to register the administrator.")
	f.StringVar(&o.SessionKey, "session-key", "", "HMAC key for session tokens, random when unset.")
	f.DurationVar(&o.SessionTTL, "session-ttl", time.Hour, "Lifetime of a login session.")
}

type Handler struct {
	// log is used for request and error logging.
	log logr.Logger

	// store holds the hotel.
	store *Store

	// options allows behaviour to be defined on the CLI.
	options *Options

	// sessions mints and checks session tokens.
	sessions *sessionIssuer
}

func New(log logr.Logger, store *Store, options *Options) (*Handler, error) {
	key := []byte(options.SessionKey)

	if len(key) == 0 {
		key = make([]byte, sessionKeyLength)

		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
	}

	ttl := options.SessionTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	h := &Handler{
		log:     log,
		store:   store,
		options: options,
		sessions: &sessionIssuer{
			key: key,
			ttl: ttl,
			now: store.now,
		},
	}

	return h, nil
}

// Routes mounts the hotel API.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/account/admin-register-status", h.GetAdminRegisterStatus)
		r.Post("/account/register-admin", h.RegisterAdmin)
		r.Post("/account/register", h.Register)
		r.Post("/account/login", h.Login)
		r.Post("/account/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/account/manage/info", h.GetUserInfo)

			r.Get("/guests", h.GetGuests)
			r.Post("/guests", h.CreateGuest)
			r.Put("/guests/{guestID}", h.UpdateGuest)
			r.Delete("/guests/{guestID}", h.DeleteGuest)

			r.Get("/room-property-groups", h.GetRoomPropertyGroups)
			r.Post("/room-property-groups", h.CreateRoomPropertyGroup)
			r.Put("/room-property-groups/{groupID}", h.UpdateRoomPropertyGroup)
			r.Delete("/room-property-groups/{groupID}", h.DeleteRoomPropertyGroup)

			r.Get("/rooms", h.GetRooms)
			r.Post("/rooms", h.CreateRoom)
			r.Get("/rooms/availability", h.GetRoomAvailability)
			r.Put("/rooms/{roomID}", h.UpdateRoom)
			r.Delete("/rooms/{roomID}", h.DeleteRoom)

			r.Get("/reservations", h.GetReservations)
			r.Post("/reservations", h.CreateReservation)
			r.Put("/reservations/{reservationID}/checkout", h.Checkout)

			r.Get("/inventory", h.GetInventory)
			r.Post("/inventory", h.CreateProductStock)
			r.Put("/inventory/{stockID}", h.UpdateProductStock)
			r.Delete("/inventory/{stockID}", h.DeleteProductStock)

			r.Get("/reports/purchases", h.GetPurchaseReports)
			r.Post("/reports/purchases", h.CreatePurchaseReport)
			r.Get("/reports/usages", h.GetUsageReports)
			r.Post("/reports/usages", h.CreateUsageReport)
		})
	})
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	HandleError(h.log, w, r, err)
}

// authenticate accepts either the session cookie or a bearer token.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			h.handleError(w, r, HTTPUnauthorized().WithError(err))
			return
		}

		principal, err := h.sessions.parse(token)
		if err != nil {
			h.handleError(w, r, HTTPUnauthorized().WithError(err))
			return
		}

		if h.store.Revoked(principal.SessionID) {
			h.handleError(w, r, HTTPUnauthorized().WithError(ErrRevoked))
			return
		}

		next.ServeHTTP(w, r.WithContext(newContextWithPrincipal(r.Context(), principal)))
	})
}

// IssueToken creates a session token for an existing user, it is accepted as
// a bearer token.
func (h *Handler) IssueToken(userName string) (string, error) {
	info, err := h.store.UserInfo(userName)
	if err != nil {
		return "", err
	}

	token, _, err := h.sessions.issue(info.UserName, info.IsAdmin)
	if err != nil {
		return "", err
	}

	return token, nil
}

func (h *Handler) GetAdminRegisterStatus(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.AdminRegistrationAllowed())
}

func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	request := &openapi.RegisterAdminRequest{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.store.RegisterAdmin(request, h.options.AdminCode); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log.Info("administrator registered", "user", request.UserName)

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	request := &openapi.LoginRequest{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.store.Register(request); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log.Info("user registered", "user", request.UserName)

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	request := &openapi.LoginRequest{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	info, err := h.store.Authenticate(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	token, expires, err := h.sessions.issue(info.UserName, info.IsAdmin)
	if err != nil {
		h.handleError(w, r, HTTPServerError("unable to create session").WithError(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := tokenFromRequest(r); err == nil {
		if principal, err := h.sessions.parse(token); err == nil {
			h.store.Revoke(principal.SessionID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	result, err := h.store.UserInfo(principal.UserName)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, result)
}

func (h *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.Guests())
}

func (h *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	request := &openapi.GuestCreate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	id, err := h.store.CreateGuest(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, id)
}

func (h *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	guestID := chi.URLParam(r, "guestID")

	if err := h.store.LookupGuest(guestID); err != nil {
		h.handleError(w, r, err)
		return
	}

	request := &openapi.GuestUpdate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.store.UpdateGuest(guestID, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteGuest(chi.URLParam(r, "guestID")); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetRoomPropertyGroups(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.PropertyGroups())
}

func (h *Handler) CreateRoomPropertyGroup(w http.ResponseWriter, r *http.Request) {
	request := &openapi.RoomPropertyGroupCreate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	id, err := h.store.CreatePropertyGroup(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, id)
}

func (h *Handler) UpdateRoomPropertyGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	if err := h.store.LookupPropertyGroup(groupID); err != nil {
		h.handleError(w, r, err)
		return
	}

	request := &openapi.RoomPropertyGroupUpdate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.store.UpdatePropertyGroup(groupID, request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

func (h *Handler) DeleteRoomPropertyGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePropertyGroup(chi.URLParam(r, "groupID")); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.Rooms())
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	request := &openapi.RoomCreate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	id, err := h.store.CreateRoom(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, id)
}

func (h *Handler) GetRoomAvailability(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.Availability())
}

func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	if err := h.store.LookupRoom(roomID); err != nil {
		h.handleError(w, r, err)
		return
	}

	request := &openapi.RoomUpdate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.store.UpdateRoom(roomID, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteRoom(chi.URLParam(r, "roomID")); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.Reservations())
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	request := &openapi.ReservationCreate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	id, err := h.store.CreateReservation(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, id)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Checkout(chi.URLParam(r, "reservationID")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.Inventory())
}

func (h *Handler) CreateProductStock(w http.ResponseWriter, r *http.Request) {
	request := &openapi.ProductStockCreate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.store.CreateProductStock(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

func (h *Handler) UpdateProductStock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "stockID")

	if err := h.store.LookupProductStock(stockID); err != nil {
		h.handleError(w, r, err)
		return
	}

	request := &openapi.ProductStockUpdate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.store.UpdateProductStock(stockID, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) DeleteProductStock(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProductStock(chi.URLParam(r, "stockID")); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetPurchaseReports(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.PurchaseReports())
}

func (h *Handler) CreatePurchaseReport(w http.ResponseWriter, r *http.Request) {
	request := &openapi.PurchaseReportCreate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	id, err := h.store.CreatePurchaseReport(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, id)
}

func (h *Handler) GetUsageReports(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeJSONResponse(w, http.StatusOK, h.store.UsageReports())
}

func (h *Handler) CreateUsageReport(w http.ResponseWriter, r *http.Request) {
	request := &openapi.UsageReportCreate{}

	if err := readJSONBody(r, request); err != nil {
		h.handleError(w, r, err)
		return
	}

	id, err := h.store.CreateUsageReport(request)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, id)
}
