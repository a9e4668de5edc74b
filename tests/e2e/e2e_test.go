package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"homestay/internal/database"
	"homestay/internal/domain"
	"homestay/internal/middleware"
	"homestay/internal/modules/booking"
	"homestay/internal/modules/catalog"
	jwtsvc "homestay/internal/pkg/jwt"
	"homestay/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	accommodationRepo := repository.NewAccommodationRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	catalogService := catalog.NewService(accommodationRepo, roomRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, roomRepo, accommodationRepo)
	bookingHandler := booking.NewHandler(bookingService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	catalogHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		catalogHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
	}
}

// createUser inserts a user directly and mints a token for them; identity
// provisioning is out of scope for this API, tokens are issued elsewhere.
func (s *E2ETestSuite) createUser(t *testing.T, email string, role domain.UserRole) (int64, string) {
	user := &domain.User{
		Email:        email,
		PasswordHash: "$2a$10$dummy",
		Role:         role,
		Name:         email,
	}
	require.NoError(t, s.db.Create(user).Error)

	token, err := s.jwtService.GenerateToken(user.ID, role)
	require.NoError(t, err)

	return user.ID, token
}

// publishAccommodation flips a listing to the published status that the
// public search filters on.
func (s *E2ETestSuite) publishAccommodation(t *testing.T, id int64) {
	err := s.db.Model(&domain.Accommodation{}).
		Where("id = ?", id).
		Update("status", domain.ListingSuccess).Error
	require.NoError(t, err)
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Body: %s", w.Body.String())
	return &resp
}

func idFrom(t *testing.T, resp *TestResponse, key string) int64 {
	obj, ok := resp.Data[key].(map[string]interface{})
	require.True(t, ok, "no %q object in response data", key)
	idVal, ok := obj["id"].(float64)
	require.True(t, ok, "%q object has no id", key)
	return int64(idVal)
}

// setupListing creates a host with one published accommodation and one room,
// returning everything later flows need.
func (s *E2ETestSuite) setupListing(t *testing.T) (hostToken string, hostID, accID, roomID int64) {
	hostID, hostToken = s.createUser(t, "host@test.com", domain.RoleHost)

	w := s.makeRequest("POST", "/api/v1/accommodations", map[string]interface{}{
		"name":                "Baan Talay",
		"description":         "Beach house near the pier",
		"address":             "12 Beach Road",
		"city":                "Hua Hin",
		"country":             "Thailand",
		"category":            "house",
		"min_price_per_night": 900.0,
	}, hostToken)
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	accID = idFrom(t, parseResponse(t, w), "accommodation")

	s.publishAccommodation(t, accID)

	w = s.makeRequest("POST", fmt.Sprintf("/api/v1/accommodations/%d/rooms", accID), map[string]interface{}{
		"name":            "Sea View Room",
		"size_sqm":        28,
		"max_guest":       2,
		"price_per_night": 1000.0,
		"bed_type":        "Queen",
		"bed_count":       1,
		"bathroom_count":  1,
	}, hostToken)
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	roomID = idFrom(t, parseResponse(t, w), "room")

	return hostToken, hostID, accID, roomID
}

func bookingBody(roomID, accID int64, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"room_id":          roomID,
		"accommodation_id": accID,
		"start_date":       start + "T00:00:00Z",
		"end_date":         end + "T00:00:00Z",
	}
}

func TestBookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	hostToken, _, accID, roomID := suite.setupListing(t)
	_, guestToken := suite.createUser(t, "guest@test.com", domain.RoleGuest)
	_, otherGuestToken := suite.createUser(t, "other@test.com", domain.RoleGuest)

	var bookingID int64

	t.Run("create booking", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-06-10", "2026-06-13"), guestToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		bookingID = idFrom(t, resp, "booking")

		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, float64(3), b["nights_stayed"])
		assert.Equal(t, float64(3000), b["total_price"])
		assert.Equal(t, "not_paid", b["status"])
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-06-11", "2026-06-15"), otherGuestToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)
	})

	t.Run("boundary-touching booking is rejected", func(t *testing.T) {
		// check-in on the previous guest's checkout day still conflicts
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-06-13", "2026-06-16"), otherGuestToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("disjoint booking succeeds", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-06-20", "2026-06-22"), otherGuestToken)
		assert.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-07-05", "2026-07-01"), guestToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_RANGE", resp.Error.Code)
	})

	t.Run("guest cannot confirm payment", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/payment", bookingID), nil, guestToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner confirms payment", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/payment", bookingID), nil, hostToken)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		b := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "paid", b["status"])
	})

	t.Run("confirming payment again is a no-op", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/payment", bookingID), nil, hostToken)
		require.Equal(t, http.StatusOK, w.Code)

		b := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "paid", b["status"])
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		w := suite.makeRequest("DELETE",
			fmt.Sprintf("/api/v1/bookings/%d?accommodation_id=%d", bookingID, accID), nil, otherGuestToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("guest cancels and the dates open up again", func(t *testing.T) {
		w := suite.makeRequest("DELETE",
			fmt.Sprintf("/api/v1/bookings/%d?accommodation_id=%d", bookingID, accID), nil, guestToken)
		require.Equal(t, http.StatusNoContent, w.Code, "Body: %s", w.Body.String())

		// same interval, same room, immediately bookable again
		w = suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-06-10", "2026-06-13"), otherGuestToken)
		assert.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("cancelled booking is gone", func(t *testing.T) {
		w := suite.makeRequest("DELETE",
			fmt.Sprintf("/api/v1/bookings/%d?accommodation_id=%d", bookingID, accID), nil, guestToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAvailabilitySearch(t *testing.T) {
	suite := setupTestSuite(t)

	hostToken, _, bookedAccID, bookedRoomID := suite.setupListing(t)
	_, guestToken := suite.createUser(t, "guest@test.com", domain.RoleGuest)

	// second published listing with no bookings
	w := suite.makeRequest("POST", "/api/v1/accommodations", map[string]interface{}{
		"name":                "Sukhumvit City Loft",
		"description":         "Compact loft near the BTS",
		"address":             "88 Sukhumvit 23",
		"city":                "Bangkok",
		"country":             "Thailand",
		"category":            "apartment",
		"min_price_per_night": 1400.0,
	}, hostToken)
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	freeAccID := idFrom(t, parseResponse(t, w), "accommodation")
	suite.publishAccommodation(t, freeAccID)

	w = suite.makeRequest("POST", "/api/v1/bookings",
		bookingBody(bookedRoomID, bookedAccID, "2026-06-10", "2026-06-15"), guestToken)
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

	searchIDs := func(t *testing.T, path string) []int64 {
		w := suite.makeRequest("GET", path, nil, "")
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := parseResponse(t, w)
		raw, ok := resp.Data["accommodations"].([]interface{})
		require.True(t, ok)

		ids := make([]int64, 0, len(raw))
		for _, item := range raw {
			ids = append(ids, int64(item.(map[string]interface{})["id"].(float64)))
		}
		return ids
	}

	t.Run("no window returns both listings", func(t *testing.T) {
		ids := searchIDs(t, "/api/v1/accommodations?country=Thailand")
		assert.ElementsMatch(t, []int64{bookedAccID, freeAccID}, ids)
	})

	t.Run("window over the stay hides the booked listing", func(t *testing.T) {
		ids := searchIDs(t, "/api/v1/accommodations?from=2026-06-12&to=2026-06-14")
		assert.Equal(t, []int64{freeAccID}, ids)
	})

	t.Run("window starting on the checkout day still hides it", func(t *testing.T) {
		ids := searchIDs(t, "/api/v1/accommodations?from=2026-06-15&to=2026-06-18")
		assert.Equal(t, []int64{freeAccID}, ids)
	})

	t.Run("window after the stay shows both", func(t *testing.T) {
		ids := searchIDs(t, "/api/v1/accommodations?from=2026-06-20&to=2026-06-25")
		assert.ElementsMatch(t, []int64{bookedAccID, freeAccID}, ids)
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/accommodations?from=2026-06-14&to=2026-06-12", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pending listing is not searchable", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/accommodations", map[string]interface{}{
			"name":                "Unreviewed Villa",
			"description":         "Awaiting review",
			"address":             "1 Hill Road",
			"country":             "Thailand",
			"min_price_per_night": 2000.0,
		}, hostToken)
		require.Equal(t, http.StatusCreated, w.Code)
		pendingID := idFrom(t, parseResponse(t, w), "accommodation")

		ids := searchIDs(t, "/api/v1/accommodations?country=Thailand")
		assert.NotContains(t, ids, pendingID)
	})
}

func TestCatalogManagement(t *testing.T) {
	suite := setupTestSuite(t)

	hostToken, _, accID, roomID := suite.setupListing(t)
	_, guestToken := suite.createUser(t, "guest@test.com", domain.RoleGuest)
	_, strangerToken := suite.createUser(t, "stranger@test.com", domain.RoleHost)

	t.Run("owner lists their accommodations", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/accommodations/mine", nil, hostToken)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := parseResponse(t, w)
		accs := resp.Data["accommodations"].([]interface{})
		assert.Len(t, accs, 1)
	})

	t.Run("stranger cannot update a listing", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/accommodations/%d", accID), map[string]interface{}{
			"name":                "Hijacked",
			"description":         "x",
			"address":             "x",
			"country":             "x",
			"min_price_per_night": 1.0,
		}, strangerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner updates a room partially", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/rooms/%d", roomID), map[string]interface{}{
			"price_per_night": 1200.0,
		}, hostToken)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		room := parseResponse(t, w).Data["room"].(map[string]interface{})
		assert.Equal(t, float64(1200), room["price_per_night"])
		assert.Equal(t, "Sea View Room", room["name"])
	})

	t.Run("room with a booking cannot be deleted", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-08-01", "2026-08-03"), guestToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
		bookingID := idFrom(t, parseResponse(t, w), "booking")

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, hostToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "HAS_BOOKINGS", resp.Error.Code)

		// accommodation deletion is blocked for the same reason
		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/accommodations/%d", accID), nil, hostToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		// after cancelling, both go through
		w = suite.makeRequest("DELETE",
			fmt.Sprintf("/api/v1/bookings/%d?accommodation_id=%d", bookingID, accID), nil, guestToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, hostToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/accommodations/%d", accID), nil, hostToken)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unauthenticated write is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/accommodations", map[string]interface{}{
			"name": "Anonymous Listing",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBookingListings(t *testing.T) {
	suite := setupTestSuite(t)

	hostToken, _, accID, roomID := suite.setupListing(t)
	_, guestToken := suite.createUser(t, "guest@test.com", domain.RoleGuest)

	w := suite.makeRequest("POST", "/api/v1/bookings",
		bookingBody(roomID, accID, "2026-06-10", "2026-06-13"), guestToken)
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

	t.Run("guest sees their booking with display price", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bookings/mine", nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		bookings := parseResponse(t, w).Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)

		b := bookings[0].(map[string]interface{})
		assert.Equal(t, "Sea View Room", b["room_name"])
		assert.Equal(t, "Baan Talay", b["accommodation_name"])
		assert.Equal(t, "฿3,000", b["total_price_display"])
	})

	t.Run("host sees the booking as received", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bookings/received", nil, hostToken)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		bookings := parseResponse(t, w).Data["bookings"].([]interface{})
		assert.Len(t, bookings, 1)
	})

	t.Run("host received none for other hosts' listings", func(t *testing.T) {
		_, otherHostToken := suite.createUser(t, "otherhost@test.com", domain.RoleHost)

		w := suite.makeRequest("GET", "/api/v1/bookings/received", nil, otherHostToken)
		require.Equal(t, http.StatusOK, w.Code)

		bookings := parseResponse(t, w).Data["bookings"].([]interface{})
		assert.Empty(t, bookings)
	})
}

func TestBookingWithZoneOffsets(t *testing.T) {
	suite := setupTestSuite(t)

	_, _, accID, roomID := suite.setupListing(t)
	_, guestToken := suite.createUser(t, "guest@test.com", domain.RoleGuest)
	_, otherGuestToken := suite.createUser(t, "other@test.com", domain.RoleGuest)

	// client in UTC+14 books June 10 -> 15
	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"room_id":          roomID,
		"accommodation_id": accID,
		"start_date":       "2026-06-10T00:00:00+14:00",
		"end_date":         "2026-06-15T00:00:00+14:00",
	}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

	t.Run("UTC candidate on the nominal checkout day is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-06-15", "2026-06-18"), otherGuestToken)
		assert.Equal(t, http.StatusConflict, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("listing reads keep working after the offset booking", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/accommodations/%d", accID), nil, "")
		assert.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		w = suite.makeRequest("GET", "/api/v1/accommodations?from=2026-06-12&to=2026-06-14", nil, "")
		assert.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("the nominal day after checkout is bookable", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings",
			bookingBody(roomID, accID, "2026-06-16", "2026-06-18"), otherGuestToken)
		assert.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
