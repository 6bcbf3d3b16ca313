package translate

var Phrases = Dictionary{
	"es": {
		{"Mentions automatic renewal of subscription or payment", "Menciona la renovación automática de la suscripción o del pago"},
		{"Mentions fees, charges or billing terms", "Menciona tarifas, cargos o condiciones de facturación"},
		{"Mentions sharing or processing of personal data with third parties", "Menciona el intercambio o tratamiento de datos personales con terceros"},
		{"Mentions waiver of rights or limitation of liability", "Menciona la renuncia a derechos o la limitación de responsabilidad"},
		{"Mentions arbitration or dispute resolution terms", "Menciona arbitraje o condiciones de resolución de disputas"},
	},
	"fr": {
		{"Mentions automatic renewal of subscription or payment", "Mentionne le renouvellement automatique de l'abonnement ou du paiement"},
		{"Mentions fees, charges or billing terms", "Mentionne des frais, des prélèvements ou des conditions de facturation"},
		{"Mentions sharing or processing of personal data with third parties", "Mentionne le partage ou le traitement de données personnelles avec des tiers"},
		{"Mentions waiver of rights or limitation of liability", "Mentionne la renonciation à des droits ou la limitation de responsabilité"},
		{"Mentions arbitration or dispute resolution terms", "Mentionne l'arbitrage ou des conditions de résolution des litiges"},
	},
	"de": {
		{"Mentions automatic renewal of subscription or payment", "Erwähnt die automatische Verlängerung des Abonnements oder der Zahlung"},
		{"Mentions fees, charges or billing terms", "Erwähnt Gebühren, Belastungen oder Abrechnungsbedingungen"},
		{"Mentions sharing or processing of personal data with third parties", "Erwähnt die Weitergabe oder Verarbeitung personenbezogener Daten an Dritte"},
		{"Mentions waiver of rights or limitation of liability", "Erwähnt den Verzicht auf Rechte oder die Haftungsbeschränkung"},
		{"Mentions arbitration or dispute resolution terms", "Erwähnt Schiedsverfahren oder Bedingungen zur Streitbeilegung"},
	},
}
