package server

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

func (s *Server) loglevel(rw http.ResponseWriter, req *http.Request) error {
	// curl -X POST -H "x-api-key: $KEY" -d "level=debug" localhost:8080/v1/loglevel
	logrus.Debugf("Received loglevel request")
	if req.Method == http.MethodGet {
		level := logrus.GetLevel().String()
		_, _ = rw.Write([]byte(fmt.Sprintf("%s\n", level)))
	}

	if req.Method == http.MethodPost {
		if err := req.ParseForm(); err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
			_, _ = rw.Write([]byte(fmt.Sprintf("Failed to parse form: %v\n", err)))
			return nil
		}
		level, err := logrus.ParseLevel(req.Form.Get("level"))
		if err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
			_, _ = rw.Write([]byte(fmt.Sprintf("Failed to parse loglevel: %v\n", err)))
		} else {
			logrus.SetLevel(level)
			_, _ = rw.Write([]byte("OK\n"))
		}
	}
	return nil
}
