package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Roll-Play/votechain/pkg/api/handlers/fixtures"
	"github.com/Roll-Play/votechain/pkg/config"
	apiutils "github.com/Roll-Play/votechain/pkg/utils/api_utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ServerTestSuite struct {
	suite.Suite
	cfg    *config.Config
	server *Server
}

func (suite *ServerTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		Environment:      config.TestEnvironment,
		Port:             "8080",
		CORSAllowOrigins: []string{"*"},
	}
	suite.server = NewServer(suite.cfg, fixtures.CreateChain(2, nil), zap.NewNop())
}

func (suite *ServerTestSuite) do(method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, bytes.NewReader(body))
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	suite.server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func (suite *ServerTestSuite) TestNormalizePort() {
	assert.Equal(suite.T(), ":8080", normalizePort("8080"))
	assert.Equal(suite.T(), ":9000", normalizePort(":9000"))
	assert.Equal(suite.T(), ":"+config.DefaultPort, normalizePort(""))
	assert.Equal(suite.T(), ":8080", suite.server.Address())
}

func (suite *ServerTestSuite) TestStatusScenarios() {
	t := suite.T()

	for _, target := range []string{"/status", "/status?x=1"} {
		recorder := suite.do(http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
		assert.JSONEq(t, `{"status": "API running"}`, recorder.Body.String())
	}

	post := suite.do(http.MethodPost, "/status", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, post.Code)
	assert.NotContains(t, post.Body.String(), "API running")

	unknown := suite.do(http.MethodGet, "/unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, unknown.Code)
	assert.NotContains(t, unknown.Body.String(), "API running")
}

func (suite *ServerTestSuite) TestVotingFlow() {
	t := suite.T()
	jsonHeader := map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON}

	first := suite.do(http.MethodPost, "/vote", []byte(`{"voterId":"alice","candidateId":"c1"}`), jsonHeader)
	assert.Equal(t, http.StatusOK, first.Code)
	var vote map[string]interface{}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &vote))
	assert.Equal(t, "alice", vote["voterId"])
	assert.NotEmpty(t, vote["id"])

	second := suite.do(http.MethodPost, "/vote", []byte(`{"voterId":"bob","candidateId":"c2"}`), jsonHeader)
	assert.Equal(t, http.StatusOK, second.Code)
	var block map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &block))
	assert.Equal(t, float64(1), block["index"])
	assert.Len(t, block["transactions"], 2)

	stats := suite.do(http.MethodGet, "/stats", nil, nil)
	assert.JSONEq(t, `{"totalBlocks":2,"totalVotes":2,"pendingVotes":0}`, stats.Body.String())

	valid := suite.do(http.MethodGet, "/validate", nil, nil)
	assert.JSONEq(t, `{"isValid":true}`, valid.Body.String())

	chain := suite.do(http.MethodGet, "/blockchain", nil, nil)
	var response struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(chain.Body.Bytes(), &response))
	assert.Len(t, response.Blocks, 2)
}

func (suite *ServerTestSuite) TestVoteRequiresTokenWhenSecretSet() {
	t := suite.T()
	suite.cfg.JWTSecret = "server-secret"
	suite.server = NewServer(suite.cfg, fixtures.CreateChain(5, nil), zap.NewNop())

	body := []byte(`{"voterId":"spoofed","candidateId":"c1"}`)
	jsonHeader := map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON}
	assert.Equal(t, http.StatusUnauthorized, suite.do(http.MethodPost, "/vote", body, jsonHeader).Code)

	token, err := apiutils.CreateJWT("voter-7", suite.cfg.JWTSecret, time.Minute)
	require.NoError(t, err)
	recorder := suite.do(http.MethodPost, "/vote", body, map[string]string{
		echo.HeaderContentType:   echo.MIMEApplicationJSON,
		echo.HeaderAuthorization: "Bearer " + token,
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	var vote map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &vote))
	assert.Equal(t, "voter-7", vote["voterId"])
}

func (suite *ServerTestSuite) TestCORSPreflight() {
	recorder := suite.do(http.MethodOptions, "/vote", nil, map[string]string{
		echo.HeaderOrigin:                     "https://ballot.example",
		echo.HeaderAccessControlRequestMethod: http.MethodPost,
	})

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	assert.Equal(suite.T(), "*", recorder.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(suite.T(), recorder.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost)
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
