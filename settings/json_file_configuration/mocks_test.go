package json_file_configuration

import "errors"

type mockResolver struct {
	path string
	err  error
}

func (f mockResolver) resolve() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

var errResolve = errors.New("resolve error")
