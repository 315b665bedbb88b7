// internal/common/errors/errors_test.go
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeActivityNotFound, http.StatusNotFound},
		{ErrCodeDuplicateSignup, http.StatusBadRequest},
		{ErrCodeNotRegistered, http.StatusNotFound},
		{ErrCodeInvalidEmail, http.StatusBadRequest},
		{ErrCodeCatalogInvalid, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrorCode("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.code))
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeActivityNotFound))
	assert.True(t, IsClientError(ErrCodeDuplicateSignup))
	assert.False(t, IsClientError(ErrCodeInternal))
}

func TestConstructors_CarryClientMessages(t *testing.T) {
	assert.Equal(t, "Activity not found",
		NewActivityNotFoundError("Chess Club").Message)
	assert.Equal(t, "Student already signed up for this activity",
		NewDuplicateSignupError("Chess Club", "a@x.edu").Message)
	assert.Equal(t, "Student is not registered for this activity",
		NewNotRegisteredError("Chess Club", "a@x.edu").Message)

	err := NewDuplicateSignupError("Chess Club", "a@x.edu")
	assert.Contains(t, err.Details, "Chess Club")
	assert.Contains(t, err.Details, "a@x.edu")
	assert.False(t, err.Timestamp.IsZero())
}

type recordingLogger struct {
	warns  int
	errors int
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) { l.warns++ }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.errors++ }

func TestWriteHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
		wantWarns  int
		wantErrors int
	}{
		{
			name:       "standard client error",
			err:        NewActivityNotFoundError("Knitting Circle"),
			wantStatus: http.StatusNotFound,
			wantDetail: "Activity not found",
			wantWarns:  1,
		},
		{
			name:       "duplicate signup",
			err:        NewDuplicateSignupError("Chess Club", "a@x.edu"),
			wantStatus: http.StatusBadRequest,
			wantDetail: "Student already signed up for this activity",
			wantWarns:  1,
		},
		{
			name:       "arbitrary error is normalized to 500",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal server error",
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			handler := NewErrorHandler(log)

			rec := httptest.NewRecorder()
			handler.WriteHTTP(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body["detail"])

			assert.Equal(t, tt.wantWarns, log.warns)
			assert.Equal(t, tt.wantErrors, log.errors)
		})
	}
}
