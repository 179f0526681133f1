package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/memory"
	"tracker/internal/adapters/out/metrics"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type tokenIdentity map[string]actor.Actor

func (t tokenIdentity) Authenticate(_ context.Context, credentials string) (actor.Actor, error) {
	token := strings.TrimPrefix(credentials, "Bearer ")
	if token == "" {
		return actor.Anonymous(), nil
	}
	if a, ok := t[token]; ok {
		return a, nil
	}
	return actor.Anonymous(), errors.New("unknown token")
}

type noCache struct{}

func (noCache) Get(context.Context, kernel.TrackingCode) (ports.TrackingSnapshot, bool) {
	return ports.TrackingSnapshot{}, false
}

func (noCache) Set(context.Context, ports.TrackingSnapshot) {}

func (noCache) Invalidate(context.Context, kernel.TrackingCode) {}

type uowFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type ServerTestSuite struct {
	suite.Suite

	echo *echo.Echo

	customer      actor.Actor
	otherCustomer actor.Actor
	courier       actor.Actor
	admin         actor.Actor
}

func (s *ServerTestSuite) SetupTest() {
	store := memory.NewStore()
	factory := uowFactory{factory: memory.NewUnitOfWorkFactory(store)}
	policy := services.NewAuthorizationPolicy()
	registry := prometheus.NewRegistry()
	lifecycle := metrics.New(registry)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	packages, records := store.Packages(), store.StatusRecords()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreatePackage: commands.NewCreatePackageCommandHandler(factory, policy, lifecycle),
		UpdateStatus:  commands.NewUpdateStatusCommandHandler(factory, policy, noCache{}, lifecycle),
		AssignCourier: commands.NewAssignCourierCommandHandler(factory, policy, noCache{}, lifecycle),
		SoftDelete:    commands.NewSoftDeletePackageCommandHandler(factory, policy, noCache{}, lifecycle),
		Restore:       commands.NewRestorePackageCommandHandler(factory, policy, noCache{}, lifecycle),
		GetPackage:    queries.NewGetPackageQueryHandler(packages, records, policy),
		ListPackages:  queries.NewListPackagesQueryHandler(packages, policy),
		ListDeleted:   queries.NewListDeletedPackagesQueryHandler(packages, policy),
		TrackPackage:  queries.NewTrackPackageQueryHandler(packages, records, policy, noCache{}),
		StatusRecords: queries.NewGetStatusRecordsQueryHandler(packages, records, policy),
	}, logger)

	s.customer = s.newActor(actor.Customer)
	s.otherCustomer = s.newActor(actor.Customer)
	s.courier = s.newActor(actor.Courier)
	s.admin = s.newActor(actor.Admin)

	identity := tokenIdentity{
		"customer":       s.customer,
		"other-customer": s.otherCustomer,
		"courier":        s.courier,
		"admin":          s.admin,
	}

	e, err := httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Identity: identity,
		Observer: lifecycle,
		Gatherer: registry,
		Logger:   logger,
	})
	s.Require().NoError(err)
	s.echo = e
}

func (s *ServerTestSuite) newActor(role actor.Role) actor.Actor {
	a, err := actor.New(kernel.NewUUID(), role)
	s.Require().NoError(err)
	return a
}

func (s *ServerTestSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, target any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), target), rec.Body.String())
}

const newPackageBody = `{
	"description": "Books",
	"weight": 2.5,
	"dimensions": "30x20x10",
	"pickup_address": "1 Pickup St",
	"delivery_address": "9 Delivery Ave"
}`

func (s *ServerTestSuite) createPackage() httpadapter.Package {
	rec := s.do(http.MethodPost, "/api/v1/packages", "customer", newPackageBody)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var pkg httpadapter.Package
	s.decode(rec, &pkg)
	return pkg
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *ServerTestSuite) TestCreatePackage() {
	pkg := s.createPackage()

	s.True(strings.HasPrefix(pkg.TrackingNumber, "PKG-"))
	s.Equal(s.customer.ID().String(), pkg.Customer.String())
	s.Nil(pkg.Courier)
	s.Equal("pending", pkg.Status)
	s.InDelta(2.5, pkg.Weight, 0.001)
	s.False(pkg.IsDeleted)
}

func (s *ServerTestSuite) TestCreatePackage_Rejections() {
	testCases := []struct {
		name  string
		token string
		body  string
		code  int
	}{
		{"anonymous", "", newPackageBody, http.StatusUnauthorized},
		{"courier", "courier", newPackageBody, http.StatusForbidden},
		{"admin", "admin", newPackageBody, http.StatusForbidden},
		{"unknown token", "forged", newPackageBody, http.StatusUnauthorized},
		{"zero weight", "customer", strings.Replace(newPackageBody, "2.5", "0", 1), http.StatusBadRequest},
		{"missing field", "customer", `{"description":"Books","weight":1}`, http.StatusBadRequest},
		{"bad dimensions", "customer", strings.Replace(newPackageBody, "30x20x10", "big", 1), http.StatusBadRequest},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, "/api/v1/packages", tc.token, tc.body)

			s.Equal(tc.code, rec.Code, rec.Body.String())
			var body httpadapter.Error
			s.decode(rec, &body)
			s.Equal(tc.code, body.Code)
		})
	}
}

func (s *ServerTestSuite) TestLifecycle() {
	pkg := s.createPackage()
	base := "/api/v1/packages/" + pkg.Id.String()

	rec := s.do(http.MethodPatch, base+"/assign", "admin", `{"courier":"`+s.courier.ID().String()+`"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var assigned httpadapter.Package
	s.decode(rec, &assigned)
	s.Require().NotNil(assigned.Courier)
	s.Equal(s.courier.ID().String(), assigned.Courier.String())

	rec = s.do(http.MethodPost, base+"/status", "courier", `{"status":"in_transit","notes":"picked up"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var update httpadapter.StatusUpdate
	s.decode(rec, &update)
	s.Equal("in_transit", update.Status)
	s.Equal("picked up", update.Notes)
	s.Require().NotNil(update.UpdatedBy)
	s.Equal(s.courier.ID().String(), update.UpdatedBy.String())

	rec = s.do(http.MethodGet, base, "customer", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var detail httpadapter.Package
	s.decode(rec, &detail)
	s.Equal("in_transit", detail.Status)
	s.Require().Len(detail.StatusUpdates, 2)
	s.Equal("in_transit", detail.StatusUpdates[0].Status)

	rec = s.do(http.MethodGet, base+"/status", "courier", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var history []httpadapter.StatusUpdate
	s.decode(rec, &history)
	s.Len(history, 2)
}

func (s *ServerTestSuite) TestUpdateStatus_Rejections() {
	pkg := s.createPackage()
	path := "/api/v1/packages/" + pkg.Id.String() + "/status"

	testCases := []struct {
		name  string
		token string
		body  string
		code  int
	}{
		{"unassigned courier", "courier", `{"status":"delivered"}`, http.StatusForbidden},
		{"owner", "customer", `{"status":"delivered"}`, http.StatusForbidden},
		{"unknown status", "admin", `{"status":"lost"}`, http.StatusBadRequest},
		{"missing status", "admin", `{"notes":"x"}`, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, path, tc.token, tc.body)

			s.Equal(tc.code, rec.Code, rec.Body.String())
		})
	}

	rec := s.do(http.MethodPost, "/api/v1/packages/"+kernel.NewUUID().String()+"/status", "admin", `{"status":"delivered"}`)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestGetPackage_Access() {
	pkg := s.createPackage()
	path := "/api/v1/packages/" + pkg.Id.String()

	s.Equal(http.StatusOK, s.do(http.MethodGet, path, "customer", "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, path, "admin", "").Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, path, "other-customer", "").Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, path, "courier", "").Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, path, "", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/packages/"+kernel.NewUUID().String(), "admin", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/packages/not-a-uuid", "admin", "").Code)
}

func (s *ServerTestSuite) TestStatusUpdates_HiddenPackageIsEmpty() {
	pkg := s.createPackage()
	s.Require().Equal(http.StatusOK,
		s.do(http.MethodPatch, "/api/v1/packages/"+pkg.Id.String()+"/assign", "admin",
			`{"courier":"`+s.courier.ID().String()+`"}`).Code)

	rec := s.do(http.MethodGet, "/api/v1/packages/"+pkg.Id.String()+"/status", "other-customer", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *ServerTestSuite) TestListPackages() {
	s.createPackage()
	s.createPackage()

	rec := s.do(http.MethodGet, "/api/v1/packages?ordering=-updated_at&search=book", "customer", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var packages []httpadapter.Package
	s.decode(rec, &packages)
	s.Len(packages, 2)

	rec = s.do(http.MethodGet, "/api/v1/packages", "other-customer", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())

	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/packages", "", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/packages?ordering=weight", "customer", "").Code)
}

func (s *ServerTestSuite) TestSoftDeleteAndRestore() {
	pkg := s.createPackage()
	base := "/api/v1/packages/" + pkg.Id.String()

	s.Equal(http.StatusForbidden, s.do(http.MethodPatch, base+"/soft-delete", "customer", "").Code)

	rec := s.do(http.MethodPatch, base+"/soft-delete", "admin", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.JSONEq(`{"detail":"Package successfully marked as deleted"}`, rec.Body.String())

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, base, "customer", "").Code)
	s.Equal(http.StatusNotFound,
		s.do(http.MethodGet, "/api/v1/packages/track?tracking_number="+pkg.TrackingNumber, "", "").Code)

	rec = s.do(http.MethodGet, "/api/v1/packages/deleted", "admin", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var deleted []httpadapter.Package
	s.decode(rec, &deleted)
	s.Require().Len(deleted, 1)
	s.True(deleted[0].IsDeleted)
	s.NotNil(deleted[0].DeletedAt)

	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/v1/packages/deleted", "customer", "").Code)

	rec = s.do(http.MethodPatch, base+"/restore", "admin", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"detail":"Package successfully restored"}`, rec.Body.String())

	s.Equal(http.StatusOK, s.do(http.MethodGet, base, "customer", "").Code)
}

func (s *ServerTestSuite) TestTrackPackage() {
	pkg := s.createPackage()
	path := "/api/v1/packages/track?tracking_number=" + pkg.TrackingNumber

	rec := s.do(http.MethodGet, path, "", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var reduced map[string]any
	s.decode(rec, &reduced)
	s.Equal(pkg.TrackingNumber, reduced["tracking_number"])
	s.Equal("pending", reduced["status"])
	s.Contains(reduced, "status_updates")
	s.NotContains(reduced, "id")
	s.NotContains(reduced, "customer")

	rec = s.do(http.MethodGet, path, "other-customer", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), `"customer"`)

	rec = s.do(http.MethodGet, path, "customer", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var full httpadapter.Package
	s.decode(rec, &full)
	s.Equal(pkg.Id, full.Id)
}

func (s *ServerTestSuite) TestTrackPackage_Rejections() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/packages/track", "", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/packages/track?tracking_number=", "", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/packages/track?tracking_number=NON-EXISTENT", "", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/packages/track?tracking_number=PKG-0000000000", "", "").Code)
}

func (s *ServerTestSuite) TestMetricsAndDocs() {
	s.createPackage()

	rec := s.do(http.MethodGet, "/metrics", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "tracker_package_mutations_total")
	s.Contains(rec.Body.String(), "tracker_http_request_duration_seconds")

	rec = s.do(http.MethodGet, "/swagger/doc.json", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "trackPackage")
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

