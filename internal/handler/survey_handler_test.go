package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"skinview-go/internal/model"
	"skinview-go/internal/service"
)

type fakeSurveyService struct {
	lastScores []int
}

func (f *fakeSurveyService) Submit(userKey string, skinDO, skinSR, skinPN, skinWT int, combinationType string) (*model.Survey, error) {
	f.lastScores = []int{skinDO, skinSR, skinPN, skinWT}
	return &model.Survey{UserKey: userKey, SkinType: "OSNT"}, nil
}

func (f *fakeSurveyService) GetResult(userKey string) (*model.Survey, error) {
	return nil, nil
}

func newSurveyTestRouter(svc service.SurveyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/survey", NewSurveyHandler(svc).Submit)
	return r
}

func TestSubmitSurveyAcceptsZeroScore(t *testing.T) {
	svc := &fakeSurveyService{}
	r := newSurveyTestRouter(svc)

	body := `{"user_key":"key-1","skin_do":0,"skin_sr":28,"skin_pn":15,"skin_wt":40}`
	req := httptest.NewRequest(http.MethodPost, "/survey", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	want := []int{0, 28, 15, 40}
	for i, score := range want {
		if svc.lastScores[i] != score {
			t.Errorf("score[%d] = %d, want %d", i, svc.lastScores[i], score)
		}
	}
}

func TestSubmitSurveyRejectsMissingScore(t *testing.T) {
	svc := &fakeSurveyService{}
	r := newSurveyTestRouter(svc)

	body := `{"user_key":"key-1","skin_sr":28,"skin_pn":15,"skin_wt":40}`
	req := httptest.NewRequest(http.MethodPost, "/survey", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if svc.lastScores != nil {
		t.Error("service was called despite invalid payload")
	}
}
