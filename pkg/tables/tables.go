package tables

var (
	Archive = [][]string{
		{"Name", "{{ . | name }}"},
		{"File", "FileName"},
		{"Size", "{{ size .Size }}"},
		{"Encrypted", "{{ boolToStar .Encrypted }}"},
		{"Created", "{{ ago .Created }}"},
		{"Digest", "{{ trunc .Digest }}"},
	}

	Source = [][]string{
		{"Path", "Path"},
		{"Present", "{{ boolToStar .Present }}"},
	}

	Info = [][]string{
		{"Version", "Version"},
		{"Destination", "Destination"},
		{"Archives", "ArchiveCount"},
		{"Total-Size", "{{ size .TotalSize }}"},
		{"Provider", "{{ first .Provider \"none\" }}"},
		{"Expiry", "{{ first .Expiry \"Forever\" }}"},
		{"Encrypted", "{{ boolToStar .Encryption }}"},
		{"Protected", "{{ boolToStar .Protected }}"},
	}
)
