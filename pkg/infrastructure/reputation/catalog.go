package reputation

const (
	// APIVoid is the name of the APIVoid domain reputation provider
	APIVoid = "APIVoid"
	// IPVoid is the name of the IPVoid domain provider
	IPVoid = "IPVoid"
	// MXToolbox is the name of the MXToolbox health lookup provider
	MXToolbox = "MXToolbox"
)

// APIVoidDefinition queries the pay-as-you-go domain reputation API
func APIVoidDefinition() Definition {
	return Definition{
		Name:        APIVoid,
		Endpoint:    "https://endpoint.apivoid.com/domainrep/v1/pay-as-you-go/",
		DomainParam: "domain",
		Auth:        AuthQuery,
		KeyParam:    "key",
		KeyEnv:      []string{"APIVOID_API_KEY"},
		Fields: []FieldSpec{
			{Key: "reputation_score", Path: []string{"data", "reputation", "score"}},
			{Key: "blacklist_status", Path: []string{"data", "blacklists"}},
		},
	}
}

// IPVoidDefinition queries the IPVoid domain API.
// IPVVOID_API_KEY is the variable name older deployments used.
func IPVoidDefinition() Definition {
	return Definition{
		Name:     IPVoid,
		Endpoint: "https://api.ipvoid.com/domain/{domain}/",
		Auth:     AuthQuery,
		KeyParam: "key",
		KeyEnv:   []string{"IPVOID_API_KEY", "IPVVOID_API_KEY"},
		Fields: []FieldSpec{
			{Key: "blacklist_count", Path: []string{"Blacklists"}},
			{Key: "details", Path: []string{"Details"}},
		},
	}
}

// MXToolboxDefinition queries the MXToolbox health lookup
func MXToolboxDefinition() Definition {
	return Definition{
		Name:     MXToolbox,
		Endpoint: "https://api.mxtoolbox.com/api/v1/lookup/health/{domain}",
		Auth:     AuthBearer,
		KeyEnv:   []string{"MXTOOLBOX_API_KEY"},
		Fields: []FieldSpec{
			{Key: "health_status", Path: []string{"Health"}},
			{Key: "details", Path: []string{"Details"}},
		},
	}
}

// Definitions returns the built-in providers in lookup order
func Definitions() []Definition {
	return []Definition{
		APIVoidDefinition(),
		IPVoidDefinition(),
		MXToolboxDefinition(),
	}
}
