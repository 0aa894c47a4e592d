// Package demo is an in-memory stand-in for the ByeTax backend. It serves
// the same routes and payload shapes from fixtures so the client can be
// exercised without the real service.
package demo

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/tax"
)

const (
	requestIDHeader = "X-Request-ID"
	userKey         = "demoUser"
	timeLayout      = "2006-01-02T15:04:05"
	shareTTL        = 7 * 24 * time.Hour
)

type record struct {
	owner  int64
	result tax.AnalysisResult
}

type share struct {
	taxpayerID int64
	expiresAt  time.Time
}

// Server holds the demo backend's state.
type Server struct {
	mu        sync.Mutex
	logger    *zap.Logger
	now       func() time.Time
	users     map[int64]*tax.Profile
	tokens    map[string]int64
	taxpayers map[int64]*record
	shares    map[string]share
	nextUser  int64
	nextTP    int64
}

// NewServer returns an empty demo backend.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:    logger,
		now:       time.Now,
		users:     make(map[int64]*tax.Profile),
		tokens:    make(map[string]int64),
		taxpayers: make(map[int64]*record),
		shares:    make(map[string]share),
	}
}

// Router builds the gin engine serving the backend routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/auth/kakao/login", s.kakaoLogin)
	r.POST("/auth/dev-login", s.devLogin)
	r.GET("/share/:token", s.getShared)

	authed := r.Group("/", s.requireAuth())
	authed.GET("/auth/me", s.me)
	authed.POST("/upload", s.upload)
	authed.GET("/taxpayers", s.listTaxpayers)
	authed.GET("/taxpayers/:id", s.getTaxpayer)
	authed.GET("/taxpayers/:id/calculate", s.calculate)
	authed.GET("/taxpayers/:id/ai-analysis", s.aiAnalysis)
	authed.POST("/taxpayers/:id/share", s.createShare)
	authed.GET("/taxpayers/:id/export/excel", s.export)
	return r
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			detail(c, http.StatusUnauthorized, "로그인이 필요합니다.")
			return
		}
		s.mu.Lock()
		uid, found := s.tokens[token]
		s.mu.Unlock()
		if !found {
			detail(c, http.StatusUnauthorized, "유효하지 않은 토큰입니다.")
			return
		}
		c.Set(userKey, uid)
		c.Next()
	}
}

func currentUser(c *gin.Context) int64 {
	return c.MustGet(userKey).(int64)
}

func (s *Server) kakaoLogin(c *gin.Context) {
	detail(c, http.StatusServiceUnavailable, "카카오 앱 키가 설정되지 않았습니다. (데모 서버)")
}

// Login issues a token for nickname, creating the user on first use.
func (s *Server) Login(nickname string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var uid int64
	for id, p := range s.users {
		if p.Nickname == nickname {
			uid = id
			break
		}
	}
	if uid == 0 {
		s.nextUser++
		uid = s.nextUser
		s.users[uid] = &tax.Profile{
			ID:        uid,
			KakaoID:   "dev_" + nickname,
			Nickname:  nickname,
			CreatedAt: s.now().Format(timeLayout),
		}
	}
	token := "demo-" + uuid.NewString()
	s.tokens[token] = uid
	return token
}

func (s *Server) devLogin(c *gin.Context) {
	nickname := c.DefaultQuery("nickname", "테스트사용자")
	token := s.Login(nickname)
	c.JSON(http.StatusOK, tax.LoginResponse{AccessToken: token, TokenType: "bearer", Nickname: nickname})
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	p, ok := s.users[currentUser(c)]
	s.mu.Unlock()
	if !ok {
		detail(c, http.StatusNotFound, "사용자 없음")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Seed stores an analysis for owner and returns its id.
func (s *Server) Seed(owner int64, res tax.AnalysisResult) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTP++
	res.Taxpayer.ID = s.nextTP
	if res.Taxpayer.UploadedAt == "" {
		res.Taxpayer.UploadedAt = s.now().Format("2006-01-02 15:04:05")
	}
	s.taxpayers[s.nextTP] = &record{owner: owner, result: res}
	return s.nextTP
}

// UserID returns the user a token belongs to, 0 if unknown.
func (s *Server) UserID(token string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token]
}

func (s *Server) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		detail(c, http.StatusBadRequest, "파일이 없습니다.")
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		detail(c, http.StatusBadRequest, "PDF 파일만 업로드 가능합니다.")
		return
	}

	res := SampleAnalysis()
	res.Taxpayer.PDFFilename = fh.Filename
	id := s.Seed(currentUser(c), res)
	res.Taxpayer.ID = id

	c.JSON(http.StatusOK, tax.UploadResponse{
		Status:     "success",
		TaxpayerID: id,
		Parsed: map[string]int{
			"businesses":          len(res.Businesses),
			"other_incomes":       len(res.OtherIncomes),
			"deductions":          len(res.Deductions),
			"penalty_taxes":       len(res.PenaltyTaxes),
			"tax_history":         len(res.TaxHistory),
			"income_rate_history": len(res.IncomeRateHistory),
			"sg_expenses":         len(res.SGExpenses),
			"credit_card_usage":   len(res.CreditCardUsage),
		},
		Data: res,
	})
}

func (s *Server) listTaxpayers(c *gin.Context) {
	uid := currentUser(c)
	s.mu.Lock()
	entries := []tax.HistoryEntry{}
	for id, rec := range s.taxpayers {
		if rec.owner != uid {
			continue
		}
		tp := rec.result.Taxpayer
		entries = append(entries, tax.HistoryEntry{
			ID:          id,
			Name:        tp.Name,
			TaxYear:     tp.TaxYear,
			GuideType:   tp.GuideType,
			UploadedAt:  tp.UploadedAt,
			PDFFilename: tp.PDFFilename,
		})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	c.JSON(http.StatusOK, entries)
}

// owned resolves the :id parameter and checks ownership, writing the error
// response itself when it returns false.
func (s *Server) owned(c *gin.Context) (int64, tax.AnalysisResult, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "잘못된 ID입니다.")
		return 0, tax.AnalysisResult{}, false
	}
	s.mu.Lock()
	rec, ok := s.taxpayers[id]
	s.mu.Unlock()
	if !ok {
		detail(c, http.StatusNotFound, "납세자 없음")
		return 0, tax.AnalysisResult{}, false
	}
	if rec.owner != currentUser(c) {
		detail(c, http.StatusForbidden, "접근 권한이 없습니다.")
		return 0, tax.AnalysisResult{}, false
	}
	return id, rec.result, true
}

// flat encodes res the way the detail and share endpoints do: taxpayer
// columns at the top level next to the row lists.
func flat(res tax.AnalysisResult) (gin.H, error) {
	out := gin.H{}
	data, err := json.Marshal(res.Taxpayer)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	out["businesses"] = res.Businesses
	out["tax_history"] = res.TaxHistory
	out["income_rate_history"] = res.IncomeRateHistory
	out["sg_expenses"] = res.SGExpenses
	out["deductions"] = res.Deductions
	out["credit_card_usage"] = res.CreditCardUsage
	out["other_incomes"] = res.OtherIncomes
	out["penalty_taxes"] = res.PenaltyTaxes
	return out, nil
}

func (s *Server) writeFlat(c *gin.Context, res tax.AnalysisResult) {
	body, err := flat(res)
	if err != nil {
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) getTaxpayer(c *gin.Context) {
	if _, res, ok := s.owned(c); ok {
		s.writeFlat(c, res)
	}
}

func (s *Server) calculate(c *gin.Context) {
	id, res, ok := s.owned(c)
	if !ok {
		return
	}
	if len(res.Businesses) == 0 {
		detail(c, http.StatusNotFound, "사업장 정보가 없어 세액을 계산할 수 없습니다.")
		return
	}
	c.JSON(http.StatusOK, Calculate(id, &res))
}

func (s *Server) aiAnalysis(c *gin.Context) {
	if id, res, ok := s.owned(c); ok {
		c.JSON(http.StatusOK, Analyze(id, &res))
	}
}

func (s *Server) createShare(c *gin.Context) {
	id, _, ok := s.owned(c)
	if !ok {
		return
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	expires := s.now().Add(shareTTL)

	s.mu.Lock()
	s.shares[token] = share{taxpayerID: id, expiresAt: expires}
	s.mu.Unlock()

	c.JSON(http.StatusOK, tax.ShareToken{Token: token, ExpiresAt: expires.Format(timeLayout)})
}

func (s *Server) getShared(c *gin.Context) {
	s.mu.Lock()
	sh, ok := s.shares[c.Param("token")]
	var rec *record
	if ok {
		rec = s.taxpayers[sh.taxpayerID]
	}
	s.mu.Unlock()

	switch {
	case !ok || rec == nil:
		detail(c, http.StatusNotFound, "유효하지 않은 공유 링크입니다.")
	case s.now().After(sh.expiresAt):
		detail(c, http.StatusGone, "만료된 공유 링크입니다 (7일 초과).")
	default:
		s.writeFlat(c, rec.result)
	}
}

// export serves a CSV summary in place of the real Excel workbook; the
// client only cares about the bytes and the filename.
func (s *Server) export(c *gin.Context) {
	_, res, ok := s.owned(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	tp := res.Taxpayer
	_ = w.Write([]string{"항목", "값"})
	_ = w.Write([]string{"성명", tp.Name})
	_ = w.Write([]string{"안내유형", tp.GuideType})
	for _, b := range res.Businesses {
		_ = w.Write([]string{b.BusinessName, strconv.FormatInt(revenue(&b), 10)})
	}
	w.Flush()

	year := "-"
	if tp.TaxYear != nil {
		year = strconv.Itoa(*tp.TaxYear)
	}
	name := fmt.Sprintf("ByeTax_%s_%s.csv", tp.Name, year)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
