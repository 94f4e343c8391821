package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/domain/locale"
)

// LocaleHandler expõe as tabelas estáticas de países, províncias e municípios.
type LocaleHandler struct{}

// NewLocaleHandler constrói o handler.
func NewLocaleHandler() *LocaleHandler {
	return &LocaleHandler{}
}

type countryResponse struct {
	Code   string `json:"code"`
	NamePT string `json:"name_pt"`
	NameEN string `json:"name_en"`
	NameFR string `json:"name_fr"`
}

type provinceResponse struct {
	Name           string   `json:"name"`
	Municipalities []string `json:"municipalities"`
}

// Countries godoc
// @Summary      Países suportados no registo
// @Tags         locales
// @Produce      json
// @Success      200   {array}  countryResponse
// @Router       /api/locales/countries [get]
func (h *LocaleHandler) Countries(c *fiber.Ctx) error {
	items := make([]countryResponse, 0, len(locale.Countries))
	for _, country := range locale.Countries {
		items = append(items, countryResponse{
			Code:   country.Code,
			NamePT: country.NamePT,
			NameEN: country.NameEN,
			NameFR: country.NameFR,
		})
	}
	return c.JSON(items)
}

// Provinces godoc
// @Summary      Províncias de um país
// @Tags         locales
// @Produce      json
// @Param        country  path  string  true  "código ISO 3166-1 alpha-2"
// @Success      200   {array}  provinceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locales/{country}/provinces [get]
func (h *LocaleHandler) Provinces(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("country"))
	if locale.CountryByCode(code) == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "país não suportado"})
	}
	provinces := locale.ProvincesOf(code)
	items := make([]provinceResponse, 0, len(provinces))
	for _, p := range provinces {
		items = append(items, provinceResponse{Name: p.Name, Municipalities: p.Municipalities})
	}
	return c.JSON(items)
}

// Municipalities godoc
// @Summary      Municípios de uma província
// @Tags         locales
// @Produce      json
// @Param        country   path  string  true  "código ISO 3166-1 alpha-2"
// @Param        province  path  string  true  "nome da província"
// @Success      200   {array}  string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locales/{country}/provinces/{province}/municipalities [get]
func (h *LocaleHandler) Municipalities(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("country"))
	provinceName, err := url.PathUnescape(c.Params("province"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "província inválida"})
	}
	if locale.CountryByCode(code) == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "país não suportado"})
	}
	municipalities := locale.MunicipalitiesOf(code, provinceName)
	if municipalities == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "província não encontrada"})
	}
	return c.JSON(municipalities)
}
