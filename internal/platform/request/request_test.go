// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	requestutil "github.com/taibuivan/recursos/internal/platform/request"
	"github.com/taibuivan/recursos/internal/platform/validate"
	"github.com/taibuivan/recursos/pkg/pagination"
)

type payload struct {
	Titulo  string `json:"titulo"`
	Paginas *int   `json:"paginas"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"valid", `{"titulo":"Go","paginas":300}`, ""},
		{"malformed", `{"titulo":`, validate.ErrInvalidJSON.Message},
		{"empty", ``, validate.ErrInvalidJSON.Message},
		{"wrong_type", `{"titulo":"Go","paginas":"trescientas"}`, `"paginas" debe ser de tipo número`},
		{"unknown_field", `{"titulo":"Go","autor":"x"}`, `"autor" no está permitido`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/libros", strings.NewReader(tt.body))

			var target payload
			err := requestutil.DecodeJSON(req, &target)

			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "Go", target.Titulo)
				require.NotNil(t, target.Paginas)
				assert.Equal(t, 300, *target.Paginas)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}

func TestPage_MapsParamErrorToBadRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/temas?pagina=x", nil)

	_, err := requestutil.Page(req, pagination.DefaultLimits)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "BAD_REQUEST"))
}
