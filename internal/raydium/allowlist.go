package raydium

// defaultMints are the mints whose pools the benchmark listens to.
var defaultMints = []string{
	"3S8qX1MsMqRbiwKg2cQyx7nis1oHMgaCuc9c4VfvVdPN",
	"3B5wuUrMEi5yATD7on46hKfej3pfmd7t1RKgrsN3pump",
	"CTg3ZgYx79zrE1MteDVkmkcGniiFrK1hJ6yiabropump",
	"GiG7Hr61RVm4CSUxJmgiCoySFQtdiwxtqf64MsRppump",
	"EbZh3FDVcgnLNbh1ooatcDL1RCRhBgTKirFKNoGPpump",
	"GYKmdfcUmZVrqfcH1g579BGjuzSRijj3LBuwv79rpump",
	"8Ki8DpuWNxu9VsS3kQbarsCWMcFGWkzzA8pUPto9zBd5",
	"HiHULk2EEF6kGfMar19QywmaTJLUr3LA1em8DyW1pump",
}

// AllowList is an ordered set of mint addresses.
type AllowList struct {
	mints []string
	set   map[string]struct{}
}

// NewAllowList builds an allow-list from mints, keeping their order.
func NewAllowList(mints ...string) AllowList {
	a := AllowList{
		mints: make([]string, 0, len(mints)),
		set:   make(map[string]struct{}, len(mints)),
	}
	for _, m := range mints {
		a.mints = append(a.mints, m)
		a.set[m] = struct{}{}
	}
	return a
}

// DefaultAllowList returns the fixed allow-list compiled into the program.
func DefaultAllowList() AllowList {
	return NewAllowList(defaultMints...)
}

// Contains reports whether mint is allow-listed.
func (a AllowList) Contains(mint string) bool {
	_, ok := a.set[mint]
	return ok
}

// Mints returns the allow-listed mints in their original order.
func (a AllowList) Mints() []string {
	out := make([]string, len(a.mints))
	copy(out, a.mints)
	return out
}

// Len returns the number of entries.
func (a AllowList) Len() int {
	return len(a.mints)
}
