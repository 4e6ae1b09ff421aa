package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func newClientHandlerForTest() (*ClientHandler, *testutil.MockGateway) {
	gw := testutil.NewMockGateway()
	return NewClientHandler(service.NewClientService(gw)), gw
}

func TestClientHandler_CreateClient_ReturnsCreated(t *testing.T) {
	e := echo.New()
	h, _ := newClientHandlerForTest()

	body := strings.NewReader(`{"name":"Acme Productions"}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateClient(c); err != nil {
		t.Fatalf("CreateClient returned an error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	var resp ClientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Name != "Acme Productions" {
		t.Errorf("expected the created client's name to round-trip, got %q", resp.Name)
	}
	if resp.Status != string(domain.ClientActive) {
		t.Errorf("expected a new client to be ACTIVE, got %q", resp.Status)
	}
}

func TestClientHandler_CreateClient_RejectsBlankName(t *testing.T) {
	e := echo.New()
	h, _ := newClientHandlerForTest()

	body := strings.NewReader(`{"name":""}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateClient(c); err != nil {
		t.Fatalf("CreateClient returned an error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a blank name, got %d", rec.Code)
	}
}

func TestClientHandler_GetClient_RendersNotFoundAsProblemDetails(t *testing.T) {
	e := echo.New()
	h, _ := newClientHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/clients/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	if err := h.GetClient(c); err != nil {
		t.Fatalf("GetClient returned an error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeNotFound {
		t.Errorf("expected problem type %q, got %q", ErrorTypeNotFound, problem.Type)
	}
}

func TestClientHandler_GetClient_RejectsNonNumericID(t *testing.T) {
	e := echo.New()
	h, _ := newClientHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/clients/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.GetClient(c); err != nil {
		t.Fatalf("GetClient returned an error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a non-numeric id, got %d", rec.Code)
	}
}

func TestClientHandler_HardDeleteClient_RendersBusinessErrorAsValidation(t *testing.T) {
	e := echo.New()
	h, gw := newClientHandlerForTest()
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme", Status: domain.ClientActive})
	gw.UoW.ClientRepo.CountActiveBookingsFn = func(clientID int32) (int64, error) {
		return 1, nil
	}

	idStr := strconv.Itoa(int(client.ID))
	req := httptest.NewRequest(http.MethodDelete, "/clients/"+idStr+"/hard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idStr)

	if err := h.HardDeleteClient(c); err != nil {
		t.Fatalf("HardDeleteClient returned an error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected a KindBusiness error to render as 400, got %d", rec.Code)
	}
}

func TestClientHandler_DeleteClient_ReturnsNoContent(t *testing.T) {
	e := echo.New()
	h, gw := newClientHandlerForTest()
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme", Status: domain.ClientActive})

	idStr := strconv.Itoa(int(client.ID))
	req := httptest.NewRequest(http.MethodDelete, "/clients/"+idStr, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idStr)

	if err := h.DeleteClient(c); err != nil {
		t.Fatalf("DeleteClient returned an error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}
