package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-console/internal/application/dto"
	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
)

func TestProductRecord_AceptaNumeroOTexto(t *testing.T) {
	raw := `[{"id":2,"name":"Mac","os":"macOS","price":20.5},{"id":"3","name":"Tux","os":"Linux","price":"15"},{"id":4,"name":"X","os":"Y","price":null}]`

	var rows []dto.ProductRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rows))
	require.Len(t, rows, 3)

	assert.Equal(t, entity.Product{ID: "2", Name: "Mac", OS: "macOS", Price: "20.5"}, rows[0].ToEntity())
	assert.Equal(t, entity.Product{ID: "3", Name: "Tux", OS: "Linux", Price: "15"}, rows[1].ToEntity())
	assert.Equal(t, "", string(rows[2].Price))
}

func TestProductRecord_RechazaObjetos(t *testing.T) {
	var r dto.ProductRecord
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &r))
}

func TestNewProductRequest(t *testing.T) {
	req, err := dto.NewProductRequest(entity.Product{ID: " 1 ", Name: "Win", OS: "Windows", Price: "10"})
	require.NoError(t, err)
	assert.Equal(t, dto.ProductRequest{ID: 1, Name: "Win", OS: "Windows", Price: "10"}, req)

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Win","os":"Windows","price":"10"}`, string(body))

	_, err = dto.NewProductRequest(entity.Product{ID: "uno"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFlexString_LiteralesNumericos(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`2`, "2", true},
		{`-7`, "-7", true},
		{`20.50`, "20.50", true},
		{`1e3`, "1e3", true},
		{`9223372036854775808`, "9223372036854775808", true},
		{`0x10`, "", false},
		{`-Inf`, "", false},
		{`1-2`, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			var f dto.FlexString
			err := f.UnmarshalJSON([]byte(tc.raw))
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(f))
		})
	}
}
