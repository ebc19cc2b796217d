package http

import (
	"io"
	"net/http"
	"time"
)

// 10 MiB is far beyond any realistic snapshot at this data scale.
const maxSnapshotBytes = 10 << 20

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	data, err := s.backup.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	filename := "finor-backup-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read snapshot body")
		return
	}

	if err := s.backup.Restore(r.Context(), data); err != nil {
		writeError(w, r, http.StatusBadRequest, "snapshot not restorable: "+err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "restored"})
}
