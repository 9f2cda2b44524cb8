package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"plushhub/internal/database"
	"plushhub/internal/domain"
	"plushhub/internal/middleware"
	"plushhub/internal/modules/auth"
	"plushhub/internal/modules/catalog"
	"plushhub/internal/modules/collection"
	"plushhub/internal/modules/message"
	"plushhub/internal/modules/profile"
	"plushhub/internal/modules/social"
	jwtsvc "plushhub/internal/pkg/jwt"
	"plushhub/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	toyRepo := repository.NewToyRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	customListRepo := repository.NewCustomListRepository(db)
	followRepo := repository.NewFollowRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	catalogHandler := catalog.NewHandler(catalog.NewService(toyRepo, collectionRepo, userRepo, nil))
	collectionHandler := collection.NewHandler(collection.NewService(collectionRepo, customListRepo))
	socialHandler := social.NewHandler(social.NewService(followRepo, userRepo))
	profileHandler := profile.NewHandler(profile.NewService(userRepo, toyRepo, collectionRepo, customListRepo, followRepo))

	hub := message.NewHub()
	messageHandler := message.NewHandler(message.NewService(messageRepo, userRepo, hub), hub, jwtService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.Auth(jwtService))
	optional := v1.Group("/")
	optional.Use(middleware.OptionalAuth(jwtService))

	authHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(optional)
	catalogHandler.RegisterRoutes(v1, protected)
	socialHandler.RegisterRoutes(v1, protected)
	messageHandler.RegisterRoutes(v1, protected)
	collectionHandler.RegisterRoutes(protected)

	return &E2ETestSuite{router: r, db: db}
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
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "unparseable response: %s", w.Body.String())
	return &resp
}

func parseData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	resp := parseResponse(t, w)
	require.True(t, resp.Success, "expected success, got: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

// signup registers a user and returns its id and token.
func (s *E2ETestSuite) signup(t *testing.T, name, email string) (int64, string) {
	w := s.makeRequest("POST", "/api/v1/auth/signup", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())

	var data struct {
		UserID int64  `json:"user_id"`
		Token  string `json:"token"`
	}
	parseData(t, w, &data)
	require.NotZero(t, data.UserID)
	require.NotEmpty(t, data.Token)
	return data.UserID, data.Token
}

func (s *E2ETestSuite) createToy(t *testing.T, token, name string) int64 {
	w := s.makeRequest("POST", "/api/v1/toys", map[string]interface{}{
		"name":        name,
		"brand":       "Sanrio",
		"category":    "Sanrio",
		"description": "Very soft",
		"price":       25.0,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "create toy failed: %s", w.Body.String())

	var toy domain.Toy
	parseData(t, w, &toy)
	return toy.ID
}

func TestFlow_SignupAndLogin(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("signup issues a token", func(t *testing.T) {
		suite.signup(t, "Mia", "mia@test.com")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/signup", map[string]interface{}{
			"name":     "Other Mia",
			"email":    "mia@test.com",
			"password": "Password123!",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "EMAIL_TAKEN", resp.Error.Code)
	})

	t.Run("login with right and wrong password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "mia@test.com",
			"password": "Password123!",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "mia@test.com",
			"password": "WrongPassword!",
		}, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})
}

func TestFlow_ToyLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	miaID, miaToken := suite.signup(t, "Mia", "mia@test.com")
	_, theoToken := suite.signup(t, "Theo", "theo@test.com")

	toyID := suite.createToy(t, miaToken, "Cinnamoroll")

	t.Run("created toy lands in the creator's owned collection", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d/toys", miaID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var toys []domain.Toy
		parseData(t, w, &toys)
		require.Len(t, toys, 1)
		assert.Equal(t, toyID, toys[0].ID)
	})

	t.Run("owned toys are excluded from the available view", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/toys/available", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Items []domain.Toy `json:"items"`
			Total int64        `json:"total"`
		}
		parseData(t, w, &page)
		assert.Empty(t, page.Items)
	})

	t.Run("unknown sort key is rejected", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/toys?sort_by=password_hash", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("only the creator may edit", func(t *testing.T) {
		body := map[string]interface{}{
			"name":        "Cinnamoroll XL",
			"brand":       "Sanrio",
			"category":    "Sanrio",
			"description": "Bigger",
			"price":       40.0,
		}
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/toys/%d", toyID), body, theoToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/toys/%d", toyID), body, miaToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reviews update the mean rating", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/toys/%d/reviews", toyID), map[string]interface{}{
			"rating":  5,
			"comment": "Perfect",
		}, theoToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var toy domain.Toy
		parseData(t, w, &toy)
		assert.Equal(t, 5.0, toy.Rating)

		// Resubmitting replaces the review instead of stacking a second one.
		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/toys/%d/reviews", toyID), map[string]interface{}{
			"rating":  3,
			"comment": "Seam came loose",
		}, theoToken)
		require.Equal(t, http.StatusOK, w.Code)

		parseData(t, w, &toy)
		assert.Equal(t, 3.0, toy.Rating)
		assert.Len(t, toy.Reviews, 1)
	})

	t.Run("like toggles on and off", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/toys/%d/like", toyID), nil, theoToken)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			IsLiked bool `json:"is_liked"`
		}
		parseData(t, w, &res)
		assert.True(t, res.IsLiked)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/toys/%d/like", toyID), nil, theoToken)
		require.Equal(t, http.StatusOK, w.Code)
		parseData(t, w, &res)
		assert.False(t, res.IsLiked)
	})
}

func TestFlow_CollectionContainers(t *testing.T) {
	suite := setupTestSuite(t)

	miaID, miaToken := suite.signup(t, "Mia", "mia@test.com")
	_, theoToken := suite.signup(t, "Theo", "theo@test.com")
	toyID := suite.createToy(t, theoToken, "Pompompurin")

	wishlistPath := fmt.Sprintf("/api/v1/users/%d/collection/wishlist", miaID)

	t.Run("add to wishlist, second add conflicts", func(t *testing.T) {
		w := suite.makeRequest("POST", wishlistPath, map[string]interface{}{"toy_id": toyID}, miaToken)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("POST", wishlistPath, map[string]interface{}{"toy_id": toyID}, miaToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("same toy may sit in another container", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/collection/favorites", miaID),
			map[string]interface{}{"toy_id": toyID}, miaToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("only the owner may touch a container", func(t *testing.T) {
		w := suite.makeRequest("POST", wishlistPath, map[string]interface{}{"toy_id": toyID}, theoToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		path := fmt.Sprintf("%s/%d", wishlistPath, toyID)
		w := suite.makeRequest("DELETE", path, nil, miaToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("DELETE", path, nil, miaToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("custom list names are unique per owner", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%d/lists", miaID)
		w := suite.makeRequest("POST", path, map[string]interface{}{"name": "Grails"}, miaToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = suite.makeRequest("POST", path, map[string]interface{}{"name": "Grails"}, miaToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestFlow_FollowGraph(t *testing.T) {
	suite := setupTestSuite(t)

	miaID, miaToken := suite.signup(t, "Mia", "mia@test.com")
	theoID, _ := suite.signup(t, "Theo", "theo@test.com")

	t.Run("self-follow is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/follow", miaID), nil, miaToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("follow shows up on both sides", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/follow", theoID), nil, miaToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var refs []domain.UserRef
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d/following", miaID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		parseData(t, w, &refs)
		require.Len(t, refs, 1)
		assert.Equal(t, "Theo", refs[0].Name)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d/followers", theoID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		parseData(t, w, &refs)
		require.Len(t, refs, 1)
		assert.Equal(t, "Mia", refs[0].Name)
	})

	t.Run("second follow conflicts, unfollow clears both sides", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/follow", theoID), nil, miaToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/users/%d/follow", theoID), nil, miaToken)
		assert.Equal(t, http.StatusOK, w.Code)

		var refs []domain.UserRef
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d/followers", theoID), nil, "")
		parseData(t, w, &refs)
		assert.Empty(t, refs)
	})
}

func TestFlow_Messaging(t *testing.T) {
	suite := setupTestSuite(t)

	miaID, miaToken := suite.signup(t, "Mia", "mia@test.com")
	theoID, theoToken := suite.signup(t, "Theo", "theo@test.com")

	t.Run("self-message is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/messages", map[string]interface{}{
			"recipient_id": miaID,
			"content":      "note to self",
		}, miaToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	var messageID int64

	t.Run("send populates both party refs", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/messages", map[string]interface{}{
			"recipient_id": theoID,
			"content":      "Is Pompompurin up for trade?",
		}, miaToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var m domain.Message
		parseData(t, w, &m)
		messageID = m.ID
		require.NotNil(t, m.Sender)
		require.NotNil(t, m.Recipient)
		assert.Equal(t, "Mia", m.Sender.Name)
		assert.Equal(t, "Theo", m.Recipient.Name)
		assert.False(t, m.IsRead)
	})

	t.Run("only the recipient marks read", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/messages/%d/read", messageID), nil, miaToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/messages/%d/read", messageID), nil, theoToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("only the sender deletes", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/messages/%d", messageID), nil, theoToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/messages/%d", messageID), nil, miaToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestFlow_DeleteToyCascades(t *testing.T) {
	suite := setupTestSuite(t)

	miaID, miaToken := suite.signup(t, "Mia", "mia@test.com")
	theoID, theoToken := suite.signup(t, "Theo", "theo@test.com")

	toyID := suite.createToy(t, miaToken, "Cinnamoroll")

	// Theo wishlists Mia's toy so a foreign membership row exists.
	w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/collection/wishlist", theoID),
		map[string]interface{}{"toy_id": toyID}, theoToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("delete removes the toy and every membership row", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/toys/%d", toyID), nil, miaToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/toys/%d", toyID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		var count int64
		suite.db.Model(&domain.CollectionItem{}).Where("toy_id = ?", toyID).Count(&count)
		assert.Zero(t, count)

		// Owner's collection no longer lists it either.
		var toys []domain.Toy
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d/toys", miaID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		parseData(t, w, &toys)
		assert.Empty(t, toys)
	})
}

func TestFlow_ProfileAggregation(t *testing.T) {
	suite := setupTestSuite(t)

	miaID, miaToken := suite.signup(t, "Mia", "mia@test.com")
	theoID, theoToken := suite.signup(t, "Theo", "theo@test.com")

	toyID := suite.createToy(t, miaToken, "Cinnamoroll")

	w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/collection/wishlist", theoID),
		map[string]interface{}{"toy_id": toyID}, theoToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/follow", miaID), nil, theoToken)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("profile populates containers and follow counts", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d", theoID), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var p struct {
			Wishlist  []domain.Toy `json:"wishlist"`
			Owned     []domain.Toy `json:"owned_collection"`
			Following int64        `json:"following_count"`
		}
		parseData(t, w, &p)
		require.Len(t, p.Wishlist, 1)
		assert.Equal(t, toyID, p.Wishlist[0].ID)
		assert.Empty(t, p.Owned)
		assert.Equal(t, int64(1), p.Following)

		// Mia gains a follower on the other side of the same edge.
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d", miaID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var mia struct {
			Followers int64 `json:"followers_count"`
		}
		parseData(t, w, &mia)
		assert.Equal(t, int64(1), mia.Followers)
	})

	t.Run("owner sees private lists in their own profile", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/users/%d/lists", miaID),
			map[string]interface{}{"name": "Secret grails", "is_public": false}, miaToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var p struct {
			Lists []struct {
				Name string `json:"name"`
			} `json:"custom_lists"`
		}

		// Anonymous view hides the private list.
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d", miaID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		parseData(t, w, &p)
		assert.Empty(t, p.Lists)

		// The owner's own token reveals it.
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d", miaID), nil, miaToken)
		require.Equal(t, http.StatusOK, w.Code)
		parseData(t, w, &p)
		require.Len(t, p.Lists, 1)
		assert.Equal(t, "Secret grails", p.Lists[0].Name)
	})

	t.Run("password hash never leaks", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d", miaID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})
}
