package domain

// Origin tags where a resolved preference facet came from.
// Precedence when resolving: user > guidance > default.
type Origin string

const (
	// OriginUser marks a facet the adopter supplied explicitly.
	OriginUser Origin = "user"
	// OriginGuidance marks a facet inferred from free-text guidance.
	OriginGuidance Origin = "guidance"
	// OriginDefault marks a facet with no explicit or inferred value.
	OriginDefault Origin = "default"
)

// IsValid reports whether o is one of the three known origins.
func (o Origin) IsValid() bool {
	return o == OriginUser || o == OriginGuidance || o == OriginDefault
}
