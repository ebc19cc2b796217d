package core

// DefaultSettings returns the seed configuration used until the operator
// customizes it: the spot-payment discount, the pix distribution keys and
// the service price list.
func DefaultSettings() Settings {
	return Settings{
		DiscountPercent: 5,
		PixKeys: []PixKey{
			{ID: "1", Name: "BV Caixa", Percent: 50},
			{ID: "2", Name: "Vale Alimentação", Percent: 20},
			{ID: "3", Name: "Reserva", Percent: 5},
			{ID: "4", Name: "Pagbank Salário", Percent: 25},
		},
		Categories: []CategoryItem{
			{ID: "1", Name: `10 fotos /Ensaio "Livre escolha"`, DefaultValue: Money{Cents: 7500}},
			{ID: "2", Name: "24 fotos /Ensaio ESSÊNCIA", DefaultValue: Money{Cents: 19900}},
			{ID: "3", Name: `15 fotos /Ensaio "Luma"`, DefaultValue: Money{Cents: 11000}},
			{ID: "4", Name: "Aniver. infantil (4x via Pix)", DefaultValue: Money{Cents: 34000}},
			{ID: "5", Name: "Festa NINHO | Adulto ou infantil", DefaultValue: Money{Cents: 22000}},
			{ID: "6", Name: "Aniver. adulto (à vista)", DefaultValue: Money{Cents: 37000}},
			{ID: "7", Name: "Pacotes a partir de $ 99", DefaultValue: Money{Cents: 9000}},
			{ID: "8", Name: "Vídeo curto até 2min", DefaultValue: Money{Cents: 20000}},
			{ID: "9", Name: `Civil "Eterna" (Incluso recepção)`, DefaultValue: Money{Cents: 30000}},
			{ID: "10", Name: `Casamento linha "Luma"`, DefaultValue: Money{Cents: 60000}},
			{ID: "11", Name: `Casamento Linha "Eterna"`, DefaultValue: Money{Cents: 105900}},
			{ID: "12", Name: `Civil "Luma"`, DefaultValue: Money{Cents: 15500}},
			{ID: "13", Name: "Filmagens eventos", DefaultValue: Money{Cents: 75000}},
		},
	}
}
