// Package apitest provides a fake download backend for tests. It serves the same
// three endpoints as the real service with canned answers, records every call
// and can hold a check-url answer back to simulate a slow request.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Reply is a canned HTTP answer.
type Reply struct {
	Status int
	Body   any
}

// DownloadCall records one POST /api/download/ body.
type DownloadCall struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

type urlBody struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	checkReplies  map[string]Reply
	defaultCheck  Reply
	downloadReply Reply
	sitesReply    Reply
	holds         map[string]chan struct{}
	checkCalls    []string
	downloadCalls []DownloadCall
	sitesCalls    int
	requestIDs    []string
}

// NewServer starts a fake backend that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		checkReplies:  make(map[string]Reply),
		holds:         make(map[string]chan struct{}),
		defaultCheck:  Reply{Status: http.StatusOK, Body: gin.H{"supported": false, "error": "Unsupported URL"}},
		downloadReply: Reply{Status: http.StatusOK, Body: gin.H{"success": true, "message": "Download finished"}},
		sitesReply:    Reply{Status: http.StatusOK, Body: gin.H{"supported_sites": []string{"YouTube", "Vimeo", "TikTok"}}},
	}

	router := gin.New()
	router.Use(s.recordRequestID)
	router.GET("/api/supported-sites/", s.handleSites)
	router.POST("/api/check-url/", s.handleCheck)
	router.POST("/api/download/", s.handleDownload)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// Close releases held requests and shuts the server down.
func (s *Server) Close() {
	s.mu.Lock()
	for url, ch := range s.holds {
		close(ch)
		delete(s.holds, url)
	}
	s.mu.Unlock()
	s.Server.Close()
}

// SupportedVideo returns a check-url body for a supported URL.
func SupportedVideo(title, uploader string, duration float64, extractor string) gin.H {
	return gin.H{
		"supported": true,
		"title":     title,
		"uploader":  uploader,
		"duration":  duration,
		"extractor": extractor,
	}
}

// SetCheckReply sets the answer for one URL.
func (s *Server) SetCheckReply(url string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkReplies[url] = Reply{Status: status, Body: body}
}

// SetDefaultCheckReply sets the answer for URLs without a specific reply.
func (s *Server) SetDefaultCheckReply(status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultCheck = Reply{Status: status, Body: body}
}

// SetDownloadReply sets the answer of the download endpoint.
func (s *Server) SetDownloadReply(status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloadReply = Reply{Status: status, Body: body}
}

// SetSitesReply sets the answer of the supported-sites endpoint.
func (s *Server) SetSitesReply(status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sitesReply = Reply{Status: status, Body: body}
}

// Hold makes check-url requests for url block until the returned func is called.
func (s *Server) Hold(url string) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.holds[url]; ok {
		close(prev)
	}
	ch := make(chan struct{})
	s.holds[url] = ch

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.holds[url] == ch {
				delete(s.holds, url)
				close(ch)
			}
		})
	}
}

// CheckCalls returns the URLs sent to check-url, in arrival order.
func (s *Server) CheckCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.checkCalls...)
}

// DownloadCalls returns the bodies sent to the download endpoint.
func (s *Server) DownloadCalls() []DownloadCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DownloadCall(nil), s.downloadCalls...)
}

// SitesCalls returns how often supported-sites was requested.
func (s *Server) SitesCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sitesCalls
}

// RequestIDs returns the X-Request-ID headers seen so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) recordRequestID(c *gin.Context) {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		s.mu.Lock()
		s.requestIDs = append(s.requestIDs, id)
		s.mu.Unlock()
	}
	c.Next()
}

func (s *Server) handleSites(c *gin.Context) {
	s.mu.Lock()
	s.sitesCalls++
	reply := s.sitesReply
	s.mu.Unlock()

	c.JSON(reply.Status, reply.Body)
}

func (s *Server) handleCheck(c *gin.Context) {
	var body urlBody
	if err := c.ShouldBindJSON(&body); err != nil || body.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	s.mu.Lock()
	s.checkCalls = append(s.checkCalls, body.URL)
	reply, ok := s.checkReplies[body.URL]
	if !ok {
		reply = s.defaultCheck
	}
	hold := s.holds[body.URL]
	s.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-c.Request.Context().Done():
			return
		}
	}

	c.JSON(reply.Status, reply.Body)
}

func (s *Server) handleDownload(c *gin.Context) {
	var body urlBody
	if err := c.ShouldBindJSON(&body); err != nil || body.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}
	if body.Quality == "" {
		body.Quality = "best"
	}

	s.mu.Lock()
	s.downloadCalls = append(s.downloadCalls, DownloadCall{URL: body.URL, Quality: body.Quality})
	reply := s.downloadReply
	s.mu.Unlock()

	c.JSON(reply.Status, reply.Body)
}
