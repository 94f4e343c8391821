// Package locale contém as tabelas estáticas de províncias e municípios usadas
// nos dropdowns de registo e de anúncio de produtos. Dados fixos, sem base de dados.
package locale

// Country país suportado pelo marketplace, com nome em pt/en/fr.
type Country struct {
	Code   string // ISO 3166-1 alpha-2
	NamePT string
	NameEN string
	NameFR string
}

// Province divisão administrativa de primeiro nível e os seus municípios.
type Province struct {
	Name           string
	Municipalities []string
}

// Countries países disponíveis no registo.
var Countries = []Country{
	{"AO", "Angola", "Angola", "Angola"},
	{"CD", "República Democrática do Congo", "Democratic Republic of the Congo", "République démocratique du Congo"},
	{"CG", "República do Congo", "Republic of the Congo", "République du Congo"},
	{"ZM", "Zâmbia", "Zambia", "Zambie"},
	{"NA", "Namíbia", "Namibia", "Namibie"},
	{"PT", "Portugal", "Portugal", "Portugal"},
	{"FR", "França", "France", "France"},
}

// provinces por código de país.
var provinces = map[string][]Province{
	"AO": {
		{"Bengo", []string{"Caxito", "Ambriz", "Dande", "Nambuangongo"}},
		{"Benguela", []string{"Benguela", "Lobito", "Baía Farta", "Catumbela", "Cubal", "Ganda"}},
		{"Bié", []string{"Cuíto", "Andulo", "Camacupa", "Catabola", "Chinguar"}},
		{"Cabinda", []string{"Cabinda", "Cacongo", "Buco-Zau", "Belize"}},
		{"Cuando Cubango", []string{"Menongue", "Cuito Cuanavale", "Cuchi", "Mavinga"}},
		{"Cuanza Norte", []string{"N'dalatando", "Cazengo", "Golungo Alto", "Lucala"}},
		{"Cuanza Sul", []string{"Sumbe", "Porto Amboim", "Gabela", "Waku Kungo", "Quibala"}},
		{"Cunene", []string{"Ondjiva", "Cahama", "Cuanhama", "Ombadja"}},
		{"Huambo", []string{"Huambo", "Caála", "Bailundo", "Ecunha", "Longonjo"}},
		{"Huíla", []string{"Lubango", "Caconda", "Caluquembe", "Chibia", "Matala", "Quipungo"}},
		{"Luanda", []string{"Luanda", "Belas", "Cacuaco", "Cazenga", "Icolo e Bengo", "Viana", "Talatona"}},
		{"Lunda Norte", []string{"Dundo", "Cambulo", "Capenda-Camulemba", "Chitato"}},
		{"Lunda Sul", []string{"Saurimo", "Cacolo", "Dala", "Muconda"}},
		{"Malanje", []string{"Malanje", "Cacuso", "Calandula", "Cangandala", "Massango"}},
		{"Moxico", []string{"Luena", "Alto Zambeze", "Camanongue", "Léua"}},
		{"Namibe", []string{"Moçâmedes", "Bibala", "Camucuio", "Tômbua", "Virei"}},
		{"Uíge", []string{"Uíge", "Ambuíla", "Bembe", "Maquela do Zombo", "Negage"}},
		{"Zaire", []string{"M'banza-Kongo", "Soyo", "N'zeto", "Tomboco"}},
	},
	"CD": {
		{"Kinshasa", []string{"Kinshasa"}},
		{"Kongo Central", []string{"Matadi", "Boma", "Moanda"}},
		{"Haut-Katanga", []string{"Lubumbashi", "Likasi", "Kipushi"}},
		{"Kasaï", []string{"Tshikapa", "Ilebo"}},
	},
	"CG": {
		{"Brazzaville", []string{"Brazzaville"}},
		{"Pointe-Noire", []string{"Pointe-Noire"}},
		{"Niari", []string{"Dolisie", "Mossendjo"}},
	},
	"ZM": {
		{"Lusaka", []string{"Lusaka", "Chongwe", "Kafue"}},
		{"Copperbelt", []string{"Ndola", "Kitwe", "Chingola"}},
		{"Southern", []string{"Livingstone", "Choma", "Mazabuka"}},
	},
	"NA": {
		{"Khomas", []string{"Windhoek"}},
		{"Erongo", []string{"Swakopmund", "Walvis Bay"}},
		{"Oshana", []string{"Oshakati", "Ondangwa"}},
	},
	"PT": {
		{"Lisboa", []string{"Lisboa", "Sintra", "Cascais", "Loures"}},
		{"Porto", []string{"Porto", "Vila Nova de Gaia", "Matosinhos"}},
		{"Setúbal", []string{"Setúbal", "Almada", "Palmela"}},
	},
	"FR": {
		{"Île-de-France", []string{"Paris", "Versailles", "Créteil"}},
		{"Provence-Alpes-Côte d'Azur", []string{"Marseille", "Nice", "Toulon"}},
		{"Nouvelle-Aquitaine", []string{"Bordeaux", "Limoges", "Poitiers"}},
	},
}

// ProvincesOf devolve as províncias do país (nil se o país não for suportado).
func ProvincesOf(countryCode string) []Province {
	return provinces[countryCode]
}

// MunicipalitiesOf devolve os municípios de uma província de um país.
func MunicipalitiesOf(countryCode, provinceName string) []string {
	for _, p := range provinces[countryCode] {
		if p.Name == provinceName {
			return p.Municipalities
		}
	}
	return nil
}

// CountryByCode devolve o país pelo código ISO, ou nil.
func CountryByCode(code string) *Country {
	for i := range Countries {
		if Countries[i].Code == code {
			return &Countries[i]
		}
	}
	return nil
}
