// Package tenant carries the resolved empresa through the request context.
//
// Tenancy is row-level: every empresa-owned table has an empresa_id column
// and every repository query is scoped by it. The middleware resolves the
// authenticated user's empresa once per request; handlers pass it explicitly
// into services so no operation can forget the scope.
package tenant

import (
	"context"

	"gestor/internal/core/id"
)

// Ramo is the line of business of an empresa.
// AUTO unlocks vehicle-oriented behavior (placa search on quotes/documents).
type Ramo string

const (
	RamoGeral Ramo = "GERAL"
	RamoAuto  Ramo = "AUTO"
)

// Valid reports whether the ramo is a known value.
func (r Ramo) Valid() bool {
	return r == RamoGeral || r == RamoAuto
}

// Empresa is the resolved tenant of a request: the minimal projection of the
// empresa catalog that scoping and behavior switches need.
type Empresa struct {
	ID   id.ID
	Nome string
	Ramo Ramo
}

type empresaContextKey struct{}

// WithEmpresa adds the resolved empresa to context.
func WithEmpresa(ctx context.Context, emp *Empresa) context.Context {
	return context.WithValue(ctx, empresaContextKey{}, emp)
}

// GetEmpresa returns the resolved empresa from context, or nil.
func GetEmpresa(ctx context.Context) *Empresa {
	if v, ok := ctx.Value(empresaContextKey{}).(*Empresa); ok {
		return v
	}
	return nil
}

// GetEmpresaID returns the resolved empresa ID or the nil ID.
func GetEmpresaID(ctx context.Context) id.ID {
	if e := GetEmpresa(ctx); e != nil {
		return e.ID
	}
	return id.Nil()
}
