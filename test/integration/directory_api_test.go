package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-directory-service/internal/adapter/db/postgres"
	ginhandler "user-directory-service/internal/adapter/gin/handler"
	ginrouter "user-directory-service/internal/adapter/gin/router"
	"user-directory-service/internal/client"
	"user-directory-service/internal/controller"
	domain "user-directory-service/internal/domain/directory"
	"user-directory-service/internal/usecase/directory"
)

const adminToken = "integration-test-token"

// DirectoryAPITestSuite exercises the full stack: an sqlite-backed
// repository behind the Gin router, consumed by the HTTP client and
// the page controller.
type DirectoryAPITestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
}

func (s *DirectoryAPITestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&postgres.UserSchema{}))
	s.db = db

	log := zaptest.NewLogger(s.T())
	repo := postgres.NewDirectoryRepoPG(db, log)
	uc := directory.New(repo, log)
	handler := ginhandler.NewDirectoryHandler(uc, log)

	// Rate limiter stays disabled; a nil limiter is a pass-through.
	router := ginrouter.SetupRouter(handler, nil, adminToken, log)
	s.server = httptest.NewServer(router)
}

func (s *DirectoryAPITestSuite) TearDownSuite() {
	s.server.Close()
}

func (s *DirectoryAPITestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("DELETE FROM users").Error)

	// 45 records: pages of 20 give a 3-page listing.
	join := int64(1700000000)
	for i := 1; i <= 45; i++ {
		row := postgres.UserSchema{
			UserID:       fmt.Sprintf("9000%04d", i),
			FirstName:    fmt.Sprintf("First%d", i),
			LastName:     fmt.Sprintf("Last%d", i),
			Username:     fmt.Sprintf("user%d", i),
			Country:      "Iran",
			IsRegistered: i%2 == 0,
			JoinDate:     &join,
		}
		if i <= 5 {
			row.FirstName = "Ali"
			row.Country = "Germany"
		}
		s.Require().NoError(s.db.Create(&row).Error)
	}
}

func (s *DirectoryAPITestSuite) newClient() *client.Client {
	return client.New(s.server.URL, client.StaticToken(adminToken), zaptest.NewLogger(s.T()))
}

func (s *DirectoryAPITestSuite) TestPaginatedListing() {
	c := s.newClient()

	users, meta, err := c.FetchPage(context.Background(), 1, domain.FilterCriteria{})
	s.Require().NoError(err)

	s.Equal(domain.Meta{Total: 45, Page: 1, Size: 20, Pages: 3}, meta)
	s.Require().Len(users, 20)

	// Newest insertion first.
	s.Equal("90000045", users[0].UserID)
	s.Equal("90000026", users[19].UserID)

	users, meta, err = c.FetchPage(context.Background(), 3, domain.FilterCriteria{})
	s.Require().NoError(err)
	s.Equal(int64(3), meta.Page)
	s.Len(users, 5)
}

func (s *DirectoryAPITestSuite) TestServerSideFiltering() {
	c := s.newClient()

	users, meta, err := c.FetchPage(context.Background(), 1, domain.FilterCriteria{Name: "Ali"})
	s.Require().NoError(err)

	s.Equal(int64(5), meta.Total)
	s.Require().Len(users, 5)
	for _, u := range users {
		s.Equal("Ali", u.FirstName)
	}

	// Combined criteria intersect.
	users, _, err = c.FetchPage(context.Background(), 1, domain.FilterCriteria{
		Name:    "Ali",
		Country: "Iran",
	})
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *DirectoryAPITestSuite) TestControllerPageNavigation() {
	c := s.newClient()
	pc := controller.NewPageController(c, nil, zaptest.NewLogger(s.T()))
	ctx := context.Background()

	pc.Load(ctx)
	s.Equal(int64(3), pc.Meta().Pages)
	s.Len(pc.Users(), 20)

	pc.GoToPage(ctx, 2)
	s.Equal(int64(2), pc.Meta().Page)
	s.Len(pc.Users(), 20)
	s.Equal("90000025", pc.Users()[0].UserID)

	// Past the last page nothing changes.
	pc.GoToPage(ctx, 4)
	s.Equal(int64(2), pc.Meta().Page)
}

func (s *DirectoryAPITestSuite) TestControllerApplyAndClear() {
	c := s.newClient()
	pc := controller.NewPageController(c, nil, zaptest.NewLogger(s.T()))
	ctx := context.Background()

	pc.Load(ctx)
	pc.SetDraft(domain.FilterCriteria{Name: "Ali"})
	pc.Apply(ctx)

	s.Equal(int64(5), pc.Meta().Total)
	s.Equal(int64(1), pc.Meta().Page)

	pc.Clear(ctx)
	s.Equal(int64(45), pc.Meta().Total)
}

func (s *DirectoryAPITestSuite) TestRosterSnapshot() {
	c := s.newClient()

	users, err := c.FetchAll(context.Background())
	s.Require().NoError(err)
	s.Len(users, 45)
}

func (s *DirectoryAPITestSuite) TestFetchSingleUser() {
	c := s.newClient()

	u, err := c.FetchUser(context.Background(), "90000001")
	s.Require().NoError(err)
	s.Equal("Ali", u.FirstName)
}

func (s *DirectoryAPITestSuite) TestRejectsMissingToken() {
	resp, err := http.Get(s.server.URL + "/admin/users-management/?page=1&size=20")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.NotEmpty(body.Error.Message)
}

func (s *DirectoryAPITestSuite) TestRejectsWrongToken() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/admin/users-management/?page=1&size=20", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer not-the-admin-token")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("invalid credentials", body.Error.Message)
}

func (s *DirectoryAPITestSuite) TestHealthEndpointIsPublic() {
	resp, err := http.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestDirectoryAPIIntegration(t *testing.T) {
	suite.Run(t, new(DirectoryAPITestSuite))
}
