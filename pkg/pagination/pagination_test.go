// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"errors"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recursos/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{"defaults", "", 1, 20, false},
		{"explicit", "?pagina=2&registros=5", 2, 5, false},
		{"clamped", "?pagina=1&registros=5000", 1, 100, false},
		{"page_not_integer", "?pagina=dos&registros=5", 0, 0, true},
		{"limit_not_integer", "?pagina=1&registros=5.5", 0, 0, true},
		{"page_zero", "?pagina=0", 0, 0, true},
		{"negative_limit", "?registros=-3", 0, 0, true},
		{"page_offset_overflows", "?pagina=9223372036854775807&registros=5", 0, 0, true},
		{"page_offset_overflows_small_limit", "?pagina=9223372036854775807&registros=2", 0, 0, true},
		{"page_beyond_int64", "?pagina=99999999999999999999", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/temas"+tt.query, nil)

			params, err := pagination.FromRequest(req, pagination.DefaultLimits)
			if tt.wantErr {
				var paramErr *pagination.ParamError
				require.True(t, errors.As(err, &paramErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 5}.Offset())
	assert.Equal(t, 5, pagination.Params{Page: 2, Limit: 5}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, math.MaxInt, pagination.Params{Page: math.MaxInt, Limit: 5}.Offset())
}
