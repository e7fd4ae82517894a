package domain

// Service-type codes offered in the contact form
const (
	ServiceIndividualITR     = "individual-itr"
	ServiceCompanyITR        = "company-itr"
	ServiceNRI               = "nri-services"
	ServiceTaxConsultation   = "tax-consultation"
	ServiceAccountingSupport = "accounting-support"
	ServicePremiumPackage    = "premium-package"
)

// Service is one entry of the service catalog
type Service struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Price       string   `json:"price"`
	PriceNote   string   `json:"price_note"`
	IsPremium   bool     `json:"is_premium"`
}

var serviceCatalog = []Service{
	{
		ID:          ServiceIndividualITR,
		Title:       "Individual ITR Filing",
		Label:       "Individual ITR Filing",
		Description: "Hassle-free income tax return filing for salaried individuals, freelancers, and self-employed professionals.",
		Features:    []string{"All ITR Forms (ITR-1 to ITR-7)", "Tax Planning & Optimization", "Expert Review & Validation"},
		Price:       "₹999",
		PriceNote:   "onwards",
	},
	{
		ID:          ServiceCompanyITR,
		Title:       "Company ITR Filing",
		Label:       "Company ITR Filing",
		Description: "Complete corporate tax filing services for private limited companies, partnerships, and LLPs.",
		Features:    []string{"Corporate ITR Filing", "TDS/TCS Return Filing", "Compliance Management"},
		Price:       "₹4,999",
		PriceNote:   "onwards",
	},
	{
		ID:          ServiceNRI,
		Title:       "Foreign Client Services",
		Label:       "NRI/Foreign Client Services",
		Description: "Specialized tax services for NRIs, PIOs, and foreign companies with Indian income sources.",
		Features:    []string{"NRI ITR Filing", "DTAA Benefits", "Tax Residency Certificate"},
		Price:       "₹2,499",
		PriceNote:   "onwards",
	},
	{
		ID:          ServiceTaxConsultation,
		Title:       "Tax Consultation",
		Label:       "Tax Consultation",
		Description: "Expert guidance on tax planning, investment strategies, and compliance requirements.",
		Features:    []string{"Tax Saving Strategies", "Investment Planning", "Notice Handling"},
		Price:       "₹1,499",
		PriceNote:   "per session",
	},
	{
		ID:          ServiceAccountingSupport,
		Title:       "Accounting Support",
		Label:       "Accounting Support",
		Description: "Complete bookkeeping and accounting services for small businesses and startups.",
		Features:    []string{"Books of Accounts", "Financial Statements", "GST Registration & Filing"},
		Price:       "₹3,999",
		PriceNote:   "per month",
	},
	{
		ID:          ServicePremiumPackage,
		Title:       "Premium Package",
		Label:       "Premium Package",
		Description: "Complete end-to-end tax and accounting solution with priority support and expert consultation.",
		Features:    []string{"All Services Included", "Priority Support", "Unlimited Consultations"},
		Price:       "₹9,999",
		PriceNote:   "per year",
		IsPremium:   true,
	},
}

// ServiceCatalog returns a copy of the offered services in display order
func ServiceCatalog() []Service {
	out := make([]Service, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// ServiceLabel resolves a service-type code to its display label.
// Unknown codes are returned unchanged.
func ServiceLabel(code string) string {
	for _, s := range serviceCatalog {
		if s.ID == code {
			return s.Label
		}
	}
	return code
}

func IsKnownServiceType(code string) bool {
	for _, s := range serviceCatalog {
		if s.ID == code {
			return true
		}
	}
	return false
}
