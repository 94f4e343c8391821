package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbislink/agrilink-api/internal/domain/locale"
)

func TestProvincesOf_Angola(t *testing.T) {
	provs := locale.ProvincesOf("AO")
	require.Len(t, provs, 18, "Angola tem 18 províncias")

	munis := locale.MunicipalitiesOf("AO", "Huíla")
	assert.Contains(t, munis, "Lubango")
}

func TestProvincesOf_PaisDesconhecido(t *testing.T) {
	assert.Nil(t, locale.ProvincesOf("XX"))
	assert.Nil(t, locale.MunicipalitiesOf("AO", "Atlântida"))
}

func TestCountryByCode(t *testing.T) {
	c := locale.CountryByCode("CD")
	require.NotNil(t, c)
	assert.Equal(t, "Democratic Republic of the Congo", c.NameEN)
	assert.Nil(t, locale.CountryByCode("BR"))
}
