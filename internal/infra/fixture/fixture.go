// Package fixture carrega as coleções semente (leads e atividades) usadas pelos
// repositórios em memória.
package fixture

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

const (
	LeadsFile      = "leads.json"
	ActivitiesFile = "activities.json"
)

//go:embed data/*.json
var embedded embed.FS

// Seed é o estado inicial injetado nos repositórios.
type Seed struct {
	Leads   []entity.Lead
	Records []entity.Record
}

// Load lê os fixtures de dir; com dir vazio usa os arquivos embutidos no binário.
func Load(dir string) (*Seed, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}
	return LoadFS(fsys)
}

func LoadFS(fsys fs.FS) (*Seed, error) {
	leadsRaw, err := fs.ReadFile(fsys, LeadsFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", LeadsFile, err)
	}
	activitiesRaw, err := fs.ReadFile(fsys, ActivitiesFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", ActivitiesFile, err)
	}
	return Parse(leadsRaw, activitiesRaw)
}

// Parse decodifica os dois arquivos e confere unicidade de Id e o schema de cada registro.
func Parse(leadsRaw, activitiesRaw []byte) (*Seed, error) {
	var leads []entity.Lead
	if err := json.Unmarshal(leadsRaw, &leads); err != nil {
		return nil, fmt.Errorf("%s inválido: %w", LeadsFile, err)
	}

	var records entity.Records
	if err := json.Unmarshal(activitiesRaw, &records); err != nil {
		return nil, fmt.Errorf("%s inválido: %w", ActivitiesFile, err)
	}

	seenLeads := make(map[int]struct{}, len(leads))
	for i := range leads {
		l := &leads[i]
		if _, dup := seenLeads[l.ID]; dup || l.ID <= 0 {
			return nil, fmt.Errorf("%s: lead Id %d inválido ou duplicado", LeadsFile, l.ID)
		}
		seenLeads[l.ID] = struct{}{}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("%s: lead %d: %w", LeadsFile, l.ID, err)
		}
	}

	seenRecords := make(map[int]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seenRecords[rec.RecordID()]; dup || rec.RecordID() <= 0 {
			return nil, fmt.Errorf("%s: Id %d inválido ou duplicado", ActivitiesFile, rec.RecordID())
		}
		seenRecords[rec.RecordID()] = struct{}{}

		var err error
		switch r := rec.(type) {
		case entity.Activity:
			err = r.Validate()
		case entity.Task:
			err = r.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("%s: registro %d: %w", ActivitiesFile, rec.RecordID(), err)
		}
	}

	return &Seed{Leads: leads, Records: records}, nil
}
