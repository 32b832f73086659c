package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/handler"
	"github.com/mtlprog/complytrack/internal/handler/dto"
	"github.com/mtlprog/complytrack/internal/memstore"
	"github.com/mtlprog/complytrack/internal/service"
)

type HandlerTestSuite struct {
	suite.Suite
	store *memstore.Store
	mux   *http.ServeMux
}

const (
	complianceToken = "token-compliance"
	itToken         = "token-it"
	auditorToken    = "token-auditor"
	execToken       = "token-exec"
	inactiveToken   = "token-inactive"
)

func (s *HandlerTestSuite) SetupTest() {
	s.store = memstore.New()

	s.store.PutFamily(domain.ControlFamily{ID: "fam-1", Name: "Access", IsControlFamily: true})
	s.store.PutControl(domain.Control{ID: "ctl-crit", FamilyID: "fam-1", Name: "Encryption", Criticality: domain.CriticalityCritical, IsControl: true})
	s.store.PutAction(domain.CatalogAction{ID: "act-1", ControlID: "ctl-crit", Name: "Encrypt disks", IsAction: true})
	s.store.PutAsset(domain.Asset{ID: "asset-1", Name: "web-01"})

	s.store.PutUser(domain.User{ID: "compliance-1", Role: domain.RoleCompliance, Token: complianceToken, IsActive: true})
	s.store.PutUser(domain.User{ID: "it-1", Role: domain.RoleIT, Token: itToken, IsActive: true})
	s.store.PutUser(domain.User{ID: "auditor-1", Role: domain.RoleAuditor, Token: auditorToken, IsActive: true})
	s.store.PutUser(domain.User{ID: "exec-1", Role: domain.RoleExecutive, Token: execToken, IsActive: true})
	s.store.PutUser(domain.User{ID: "gone-1", Role: domain.RoleAdmin, Token: inactiveToken, IsActive: false})

	h := handler.NewWithDeps(handler.Deps{
		Records: s.store,
		Catalog: s.store,
		Assets:  s.store,
		Users:   s.store,
		Health:  s.store,
		Config:  service.Config{},
	})

	s.mux = http.NewServeMux()
	h.RegisterRoutes(s.mux)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// makeRequest sends an authenticated request through the router.
func (s *HandlerTestSuite) makeRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(w.Body).Decode(v))
}

func (s *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	return resp.Error.Code
}

func (s *HandlerTestSuite) createRecord() dto.TaskRecordDetail {
	w := s.makeRequest(http.MethodPost, "/api/v1/task-records", complianceToken, dto.CreateTaskRecordRequest{
		ActionID: "act-1",
		AssetID:  "asset-1",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var rec dto.TaskRecordDetail
	s.decode(w, &rec)
	return rec
}

func (s *HandlerTestSuite) TestHealthz() {
	w := s.makeRequest(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestWorkflowGuide() {
	w := s.makeRequest(http.MethodGet, "/workflow.md", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "CONCURRENT_MODIFICATION")
}

func (s *HandlerTestSuite) TestUnauthorized() {
	w := s.makeRequest(http.MethodGet, "/api/v1/task-records", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.makeRequest(http.MethodGet, "/api/v1/task-records", inactiveToken, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestCreateTaskRecord_CreatedThenExisting() {
	first := s.createRecord()
	s.Equal(string(domain.StatusOpen), first.Status)
	s.Empty(first.History)
	s.Contains(first.AvailableActions, string(domain.ActionDelegateToIT))

	w := s.makeRequest(http.MethodPost, "/api/v1/task-records", complianceToken, dto.CreateTaskRecordRequest{
		ActionID: "act-1",
		AssetID:  "asset-1",
	})
	s.Equal(http.StatusOK, w.Code)

	var again dto.TaskRecordDetail
	s.decode(w, &again)
	s.Equal(first.ID, again.ID)
}

func (s *HandlerTestSuite) TestCreateTaskRecord_Errors() {
	w := s.makeRequest(http.MethodPost, "/api/v1/task-records", itToken, dto.CreateTaskRecordRequest{ActionID: "act-1", AssetID: "asset-1"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(dto.CodeForbidden, s.errorCode(w))

	w = s.makeRequest(http.MethodPost, "/api/v1/task-records", complianceToken, dto.CreateTaskRecordRequest{ActionID: "act-1"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w = s.makeRequest(http.MethodPost, "/api/v1/task-records", complianceToken, dto.CreateTaskRecordRequest{ActionID: "act-1", AssetID: "asset-9"})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("ASSET_NOT_FOUND", s.errorCode(w))
}

func (s *HandlerTestSuite) TestCreateTaskRecord_BlankScopeIsUnscoped() {
	blank := "   "
	w := s.makeRequest(http.MethodPost, "/api/v1/task-records", complianceToken, dto.CreateTaskRecordRequest{
		ActionID: "act-1",
		AssetID:  "asset-1",
		ScopeID:  &blank,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var rec dto.TaskRecordDetail
	s.decode(w, &rec)
	s.Nil(rec.ScopeID)

	// the same key as an unscoped create
	w = s.makeRequest(http.MethodPost, "/api/v1/task-records", complianceToken, dto.CreateTaskRecordRequest{
		ActionID: "act-1",
		AssetID:  "asset-1",
	})
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestGetTaskRecord_InvalidAndMissingID() {
	w := s.makeRequest(http.MethodGet, "/api/v1/task-records/not-a-uuid", execToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.makeRequest(http.MethodGet, "/api/v1/task-records/00000000-0000-0000-0000-000000000001", execToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("TASK_RECORD_NOT_FOUND", s.errorCode(w))
}

func (s *HandlerTestSuite) TestFullLifecycleAndRisk() {
	rec := s.createRecord()
	base := "/api/v1/task-records/" + rec.ID

	w := s.makeRequest(http.MethodGet, "/api/v1/risk", execToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var risk dto.OverallRiskResponse
	s.decode(w, &risk)
	s.Equal(40, risk.TotalRiskScore)
	s.Require().Len(risk.AssetRisks, 1)
	s.Equal("critical", risk.AssetRisks[0].Criticality)

	w = s.makeRequest(http.MethodPost, base+"/delegate-it", complianceToken, dto.DelegateRequest{AssigneeID: "it-1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, base+"/submit-evidence", itToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, base+"/delegate-auditor", complianceToken, dto.DelegateRequest{AssigneeID: "auditor-1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, base+"/confirm-evidence", auditorToken, dto.FeedbackRequest{Feedback: "ok"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var done dto.TaskRecordDetail
	s.decode(w, &done)
	s.Equal(string(domain.StatusCompleted), done.Status)
	s.True(done.IsCompleted)
	s.Len(done.History, 4)
	s.Empty(done.AvailableActions)

	w = s.makeRequest(http.MethodGet, "/api/v1/risk/assets/asset-1", execToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var assetRisk dto.AssetRiskResponse
	s.decode(w, &assetRisk)
	s.Equal(0, assetRisk.TotalRiskScore)
	s.Equal(0, assetRisk.NumberOfIncompleteActions)
	s.Equal("critical", assetRisk.Criticality)

	w = s.makeRequest(http.MethodGet, "/api/v1/stats", execToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var stats dto.StatsResponse
	s.decode(w, &stats)
	s.Equal(1, stats.TotalRecords)
	s.Equal(1, stats.CompletedCount)
	s.InDelta(100.0, stats.CompletionRatePercent, 0.001)
}

func (s *HandlerTestSuite) TestTransitionErrors() {
	rec := s.createRecord()
	base := "/api/v1/task-records/" + rec.ID

	w := s.makeRequest(http.MethodPost, base+"/confirm-evidence", auditorToken, nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(dto.CodeInvalidTransition, s.errorCode(w))

	w = s.makeRequest(http.MethodPost, base+"/delegate-it", auditorToken, dto.DelegateRequest{AssigneeID: "it-1"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.makeRequest(http.MethodPost, base+"/delegate-it", complianceToken, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w = s.makeRequest(http.MethodPost, base+"/accept-risk", complianceToken, dto.FeedbackRequest{})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w = s.makeRequest(http.MethodGet, base, execToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var stored dto.TaskRecordDetail
	s.decode(w, &stored)
	s.Empty(stored.History)
}

func (s *HandlerTestSuite) TestNotApplicableAndAcceptRisk() {
	rec := s.createRecord()
	base := "/api/v1/task-records/" + rec.ID

	w := s.makeRequest(http.MethodPost, base+"/set-not-applicable", itToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, base+"/accept-risk", complianceToken, dto.FeedbackRequest{Feedback: "legacy box"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var accepted dto.TaskRecordDetail
	s.decode(w, &accepted)
	s.Equal(string(domain.StatusRiskAccepted), accepted.Status)
	s.Require().NotNil(accepted.Feedback)
	s.Equal("legacy box", *accepted.Feedback)

	w = s.makeRequest(http.MethodPost, base+"/confirm-not-applicable", auditorToken, nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestListTaskRecords_Filters() {
	rec := s.createRecord()

	w := s.makeRequest(http.MethodPost, "/api/v1/task-records/"+rec.ID+"/delegate-it", complianceToken, dto.DelegateRequest{AssigneeID: "it-1"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.makeRequest(http.MethodGet, "/api/v1/task-records?assigned_to=me", itToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var mine dto.TaskRecordsListResponse
	s.decode(w, &mine)
	s.Require().Len(mine.TaskRecords, 1)
	s.Equal(rec.ID, mine.TaskRecords[0].ID)

	w = s.makeRequest(http.MethodGet, "/api/v1/task-records?status=Open", itToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var open dto.TaskRecordsListResponse
	s.decode(w, &open)
	s.Empty(open.TaskRecords)

	w = s.makeRequest(http.MethodGet, "/api/v1/task-records?status=Nope", itToken, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *HandlerTestSuite) TestAssetRisk_UnknownAsset() {
	w := s.makeRequest(http.MethodGet, "/api/v1/risk/assets/asset-404", execToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}
