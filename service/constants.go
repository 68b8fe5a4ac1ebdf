package service

const (
	DownPaymentRatio   = 0.30 // cuota inicial mínima sobre el valor de la vivienda
	PaymentToIncomeCap = 0.40 // fracción máxima del ingreso destinada a la cuota

	// El ahorro extra solo se acumula durante los primeros 10 años
	SavingsAccrualCapMonths = 120

	// Malla de búsqueda
	SavingsStart = 100_000
	SavingsEnd   = 5_000_000
	SavingsStep  = 100_000
	TermStart    = 60
	TermEnd      = 240
	TermStep     = 12

	simplexTolerance = 1e-10
)
