package clients

type Oc struct {
	*cli
}

func NewOc() *Oc {
	return &Oc{
		&cli{
			Name:           "oc",
			setupStrategy:  PreferredSetupStrategy(),
			versionCommand: "version",
		}}
}
