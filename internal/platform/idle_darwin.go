package platform

func newIdleProvider() IdleProvider {
	return unsupportedIdleProvider{}
}
