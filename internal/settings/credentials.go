package settings

// Credentials is the destination-storage credential set. It is considered
// configured only when all three fields are non-empty.
type Credentials struct {
	StorageURL string `json:"storageUrl"`
	Container  string `json:"container"`
	Token      string `json:"token"`
}

func (c Credentials) Configured() bool {
	return c.StorageURL != "" && c.Container != "" && c.Token != ""
}
