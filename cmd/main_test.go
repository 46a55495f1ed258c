package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-cambio/internal/handlers"
	"github.com/sbilibin2017/gw-cambio/internal/middlewares"
	"github.com/sbilibin2017/gw-cambio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

var configKeys = []string{
	"APP_HOST", "APP_PORT", "APP_LOG_LEVEL", "RATE_STORE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_DB", "REDIS_PASSWORD", "REDIS_POOL_SIZE", "REDIS_MIN_IDLE_CONNS",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"POSTGRES_MAX_OPEN_CONNS", "POSTGRES_MAX_IDLE_CONNS",
	"ADMIN_PASSWORD", "JWT_SECRET_KEY", "JWT_EXP_SECOND",
	"KAFKA_BROKERS", "KAFKA_RATES_TOPIC", "QUOTE_CONVERGENCE",
}

// resetEnv blanks the variables read by parseConfig for the duration of the test.
func resetEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "Version: v1.0.0")
	assert.Contains(t, output, "Commit: abcd1234")
	assert.Contains(t, output, "Build: 2025-09-26")
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv(t)

	appHost, appPort, logLevel, store,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		adminPassword, jwtSecret, jwtExp,
		kafkaBrokers, kafkaTopic,
		quoteConvergence,
		err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "localhost", appHost)
	assert.Equal(t, "8080", appPort)
	assert.Equal(t, "info", logLevel)
	assert.Equal(t, rateStoreRedis, store)

	assert.Equal(t, "localhost", redisHost)
	assert.Equal(t, 6379, redisPort)
	assert.Equal(t, 0, redisDB)
	assert.Equal(t, "", redisPassword)
	assert.Equal(t, 10, redisPoolSize)
	assert.Equal(t, 2, redisMinIdleConns)

	assert.Equal(t, "localhost", pgHost)
	assert.Equal(t, 5432, pgPort)
	assert.Equal(t, "user", pgUser)
	assert.Equal(t, "password", pgPassword)
	assert.Equal(t, "database", pgDB)
	assert.Equal(t, 16, pgMaxOpenConns)
	assert.Equal(t, 8, pgMaxIdleConns)

	assert.Equal(t, "", adminPassword)
	assert.Equal(t, "my_super_secret_key", jwtSecret)
	assert.Equal(t, 3600, jwtExp)

	assert.Equal(t, "", kafkaBrokers)
	assert.Equal(t, "cambio.rates", kafkaTopic)
	assert.Equal(t, 0, quoteConvergence)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv(t)
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("RATE_STORE", "Postgres")

	t.Setenv("REDIS_HOST", "redis.example.com")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_PASSWORD", "redispass")
	t.Setenv("REDIS_POOL_SIZE", "15")
	t.Setenv("REDIS_MIN_IDLE_CONNS", "5")

	t.Setenv("POSTGRES_HOST", "pg.example.com")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "admin")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "cambio")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	t.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET_KEY", "supersecret")
	t.Setenv("JWT_EXP_SECOND", "300")

	t.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	t.Setenv("KAFKA_RATES_TOPIC", "rates")
	t.Setenv("QUOTE_CONVERGENCE", "5")

	appHost, appPort, logLevel, store,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		adminPassword, jwtSecret, jwtExp,
		kafkaBrokers, kafkaTopic,
		quoteConvergence,
		err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", appHost)
	assert.Equal(t, "9090", appPort)
	assert.Equal(t, "debug", logLevel)
	assert.Equal(t, rateStorePostgres, store)

	assert.Equal(t, "redis.example.com", redisHost)
	assert.Equal(t, 6380, redisPort)
	assert.Equal(t, 2, redisDB)
	assert.Equal(t, "redispass", redisPassword)
	assert.Equal(t, 15, redisPoolSize)
	assert.Equal(t, 5, redisMinIdleConns)

	assert.Equal(t, "pg.example.com", pgHost)
	assert.Equal(t, 5433, pgPort)
	assert.Equal(t, "admin", pgUser)
	assert.Equal(t, "secret", pgPassword)
	assert.Equal(t, "cambio", pgDB)
	assert.Equal(t, 20, pgMaxOpenConns)
	assert.Equal(t, 10, pgMaxIdleConns)

	assert.Equal(t, "hunter2", adminPassword)
	assert.Equal(t, "supersecret", jwtSecret)
	assert.Equal(t, 300, jwtExp)

	assert.Equal(t, "kafka1:9092,kafka2:9092", kafkaBrokers)
	assert.Equal(t, "rates", kafkaTopic)
	assert.Equal(t, 5, quoteConvergence)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown store", "RATE_STORE", "memcached"},
		{"redis port", "REDIS_PORT", "abc"},
		{"postgres port", "POSTGRES_PORT", "abc"},
		{"jwt expiry", "JWT_EXP_SECOND", "soon"},
		{"convergence", "QUOTE_CONVERGENCE", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEnv(t)
			t.Setenv(tt.key, tt.value)

			_, _, _, _,
				_, _, _, _,
				_, _,
				_, _, _, _, _,
				_, _,
				_, _, _,
				_, _,
				_,
				err := parseConfig("nonexistent.env")
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_JWTSecretWithAdminPassword(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectedErr error
	}{
		{
			name:        "admin password without secret",
			env:         map[string]string{"ADMIN_PASSWORD": "hunter2"},
			expectedErr: errJWTSecretRequired,
		},
		{
			name: "admin password with default secret",
			env: map[string]string{
				"ADMIN_PASSWORD": "hunter2",
				"JWT_SECRET_KEY": defaultJWTSecretKey,
			},
			expectedErr: errJWTSecretRequired,
		},
		{
			name: "admin password with own secret",
			env: map[string]string{
				"ADMIN_PASSWORD": "hunter2",
				"JWT_SECRET_KEY": "f3b1c0de",
			},
		},
		{
			name: "default secret while login disabled",
			env:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, _, _, _,
				_, _, _, _,
				_, _,
				_, _, _, _, _,
				_, _,
				_, _, _,
				_, _,
				_,
				err := parseConfig("nonexistent.env")
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

type rateServiceMock struct {
	*handlers.MockRateGetter
	*handlers.MockRateSetter
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoter := handlers.NewMockQuoter(ctrl)
	getter := handlers.NewMockRateGetter(ctrl)
	setter := handlers.NewMockRateSetter(ctrl)
	loginer := handlers.NewMockAdminLoginer(ctrl)
	tokener := middlewares.NewMockTokener(ctrl)

	r := newRouter("localhost", "8080", quoter, rateServiceMock{getter, setter}, loginer, tokener)

	t.Run("delivery options are public", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/delivery-options", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middlewares.RequestIDHeader))
	})

	t.Run("rates read is public", func(t *testing.T) {
		getter.EXPECT().GetRates(gomock.Any()).Return(&models.Rate{Currency: "PYG", Rate: 1450}, nil, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rates write requires token", func(t *testing.T) {
		tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("authorization header missing"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/rates", bytes.NewBufferString(`{"pyg":1450}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rates write with token", func(t *testing.T) {
		tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
		tokener.EXPECT().Validate(gomock.Any(), "token").Return(nil)
		setter.EXPECT().SetRates(gomock.Any(), gomock.Any(), nil).Return(&models.Rate{Currency: "PYG", Rate: 1450}, nil, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/rates", bytes.NewBufferString(`{"pyg":1450}`))
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// freePort asks the OS for an unused TCP port.
func freePort(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
}

func TestRun_RedisEndToEnd(t *testing.T) {
	ctx := context.Background()

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.0-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer redisContainer.Terminate(ctx)

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	appPort := freePort(t)
	baseURL := "http://127.0.0.1:" + appPort + "/api/v1"

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(runCtx,
			"127.0.0.1", appPort, "error", rateStoreRedis,
			redisHost, redisPort.Int(), 0, "", 5, 1,
			"", 0, "", "", "",
			0, 0,
			"s3cret", "testsecret", 60,
			"", "",
			0,
		)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/delivery-options")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 100*time.Millisecond)

	postJSON := func(path, token, body string) *http.Response {
		method := http.MethodPost
		if path == "/rates" {
			method = http.MethodPut
		}
		req, err := http.NewRequest(method, baseURL+path, bytes.NewBufferString(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	// No rate yet.
	resp := postJSON("/quote", "", `{"currency":"PYG","pay_amount":100}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON("/admin/login", "", `{"password":"s3cret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login models.AdminLoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()

	resp = postJSON("/rates", login.Token, `{"pyg":1450,"usd":5.5}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON("/quote", "", `{"currency":"PYG","pay_amount":100}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var q models.QuoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	resp.Body.Close()

	assert.Equal(t, models.QuoteStatusOK, q.Status)
	assert.Equal(t, 150000.0, q.ReceiveAmount)
	assert.Equal(t, 10.0, q.Fee)
	assert.Equal(t, 113.45, q.PayAmount)

	resp = postJSON("/quote", "", `{"currency":"USD","delivery":"km7","receive_amount":37}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	resp.Body.Close()

	assert.Equal(t, 50.0, q.ReceiveAmount)
	assert.Equal(t, 20.0, q.Fee)
	assert.Equal(t, 305.0, q.PayAmount)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not stop")
	}
}
