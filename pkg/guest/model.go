// Package guest gera e grava os usuários convidados criados pela execução
// agendada.
package guest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateUser indica que o userId gerado já existia na tabela.
var ErrDuplicateUser = errors.New("guest: userId já existe")

// UserRecord é o item gravado na tabela de usuários.
type UserRecord struct {
	UserID    string `dynamodbav:"userId" json:"userId"`
	Name      string `dynamodbav:"name" json:"name"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	Source    string `dynamodbav:"source,omitempty" json:"source,omitempty"`
}

// Generator monta novos registros. Os campos são substituíveis em testes.
type Generator struct {
	NewID func() string
	Now   func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{
		NewID: func() string { return uuid.NewString() },
		Now:   time.Now,
	}
}

// Next cria um convidado com id novo. source é o id do evento que disparou
// a execução (pode ser vazio).
func (g *Generator) Next(source string) UserRecord {
	id := g.NewID()
	return UserRecord{
		UserID:    id,
		Name:      guestName(id),
		CreatedAt: g.Now().UTC().Format(time.RFC3339),
		Source:    source,
	}
}

func guestName(id string) string {
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("guest-%s", short)
}
