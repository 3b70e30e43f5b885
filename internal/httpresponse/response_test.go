package httpresponse

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusCreated, map[string]int{"n": 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"Status":201,"Body":{"n":1}}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusConflict, errors.New("occupied"))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"Status":409,"Body":{"ErrorDescription":"occupied"}}`, rec.Body.String())
}

func TestUnencodableBodyIsInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusOK, math.NaN())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, INTERNALERRORJSON, rec.Body.String())
}

func TestWriteSGF(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSGF(rec, "abc", "(;SZ[9])\n")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/x-go-sgf; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="abc.sgf"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, "(;SZ[9])\n", rec.Body.String())
}
