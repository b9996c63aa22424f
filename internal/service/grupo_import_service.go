package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoAutenticado = errors.New("actor not authenticated")
	ErrArchivoVacio  = errors.New("import file has no data rows")
	ErrCatalogo      = errors.New("failed to load catalogs")
	ErrInterrumpido  = errors.New("import interrupted")
)

const (
	DetalleGrupoCreado = "Grupo creado"
	DetalleSinPermiso  = "Sin permiso para crear en el segmento"
	DetalleRevertido   = "Importación interrumpida, fila revertida"
)

// PermisoChecker is the authorization boundary.
type PermisoChecker interface {
	PuedeCrearGrupoEnSegmento(ctx context.Context, usuarioID, segmentoID uuid.UUID) (bool, error)
}

type GrupoStore interface {
	Create(ctx context.Context, grupo *domain.Grupo) error
	AddMiembro(ctx context.Context, grupoID, usuarioID uuid.UUID, rol domain.RolGrupo) error
	Delete(ctx context.Context, grupoID uuid.UUID) error
}

type PersonaStore interface {
	FindByNombreApellido(ctx context.Context, nombre, apellido string) (*domain.Usuario, error)
	Create(ctx context.Context, usuario *domain.Usuario) error
	FindRolByClave(ctx context.Context, clave string) (*domain.RolSistema, error)
	AssignRol(ctx context.Context, usuarioID, rolID uuid.UUID) error
	Delete(ctx context.Context, usuarioID uuid.UUID) error
}

// PersonaMatcher finds the existing person a member token refers to.
// It returns nil when there is no match.
type PersonaMatcher interface {
	Buscar(ctx context.Context, token TokenMiembro) (*uuid.UUID, error)
}

type personaFinder interface {
	FindByNombreApellido(ctx context.Context, nombre, apellido string) (*domain.Usuario, error)
}

// MatcherNombreApellido matches on given and family name only. Homonyms
// resolve to whichever record the store returns first.
type MatcherNombreApellido struct {
	finder personaFinder
}

func NewMatcherNombreApellido(finder personaFinder) *MatcherNombreApellido {
	return &MatcherNombreApellido{finder: finder}
}

func (m *MatcherNombreApellido) Buscar(ctx context.Context, token TokenMiembro) (*uuid.UUID, error) {
	usuario, err := m.finder.FindByNombreApellido(ctx, token.Nombre, token.Apellido)
	if err != nil || usuario == nil {
		return nil, err
	}
	return &usuario.ID, nil
}

type ImportOptions struct {
	// DryRun resolves and authorizes every row without writing anything.
	DryRun bool
}

// GrupoImportService creates groups and their members from import rows.
// Rows are processed one at a time with no transaction around a row: a
// member failure after the group is created leaves the group in place. Only
// an interrupted row (cancelled ctx) is compensated, removing the group and
// the persons it created.
type GrupoImportService struct {
	catalog        CatalogStore
	permisos       PermisoChecker
	grupos         GrupoStore
	personas       PersonaStore
	matcher        PersonaMatcher
	defaultRoleKey string
	logger         *zap.Logger
}

func NewGrupoImportService(
	catalog CatalogStore,
	permisos PermisoChecker,
	grupos GrupoStore,
	personas PersonaStore,
	defaultRoleKey string,
	logger *zap.Logger,
) *GrupoImportService {
	if defaultRoleKey == "" {
		defaultRoleKey = domain.RolClaveMiembro
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrupoImportService{
		catalog:        catalog,
		permisos:       permisos,
		grupos:         grupos,
		personas:       personas,
		matcher:        NewMatcherNombreApellido(personas),
		defaultRoleKey: defaultRoleKey,
		logger:         logger,
	}
}

// SetMatcher replaces the default name-based person matching.
func (s *GrupoImportService) SetMatcher(m PersonaMatcher) {
	s.matcher = m
}

// Importar runs the whole import. The returned error is set for conditions
// that stop the run before any row is processed, and for cancellation, in
// which case the results so far are returned along with ErrInterrumpido.
// Everything else is reported in the results.
func (s *GrupoImportService) Importar(ctx context.Context, actorID uuid.UUID, filas Filas, opts ImportOptions) (*Resultados, error) {
	if actorID == uuid.Nil {
		return nil, ErrNoAutenticado
	}
	if filas.Len() == 0 {
		return nil, ErrArchivoVacio
	}

	catalogo, err := CargarCatalogo(ctx, s.catalog)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogo, err)
	}

	res := &Resultados{}
	for fila := range filas.All() {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("group import interrupted",
				zap.String("actor", actorID.String()),
				zap.Int("row", fila.Numero),
				zap.Error(err),
			)
			return res, fmt.Errorf("%w: %v", ErrInterrumpido, err)
		}
		s.procesarFila(ctx, actorID, catalogo, fila, opts, res)
	}

	s.logger.Info("group import finished",
		zap.String("actor", actorID.String()),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("rows", filas.Len()),
		zap.Int("ok", res.Exitosos()),
		zap.Int("failed", res.Fallidos()),
	)
	return res, nil
}

func (s *GrupoImportService) procesarFila(ctx context.Context, actorID uuid.UUID, catalogo *Catalogo, fila FilaImport, opts ImportOptions, res *Resultados) {
	segmentoNombre := valor(fila.Segmento)
	segmentoID, ok := catalogo.Resolver(CatalogoSegmento, segmentoNombre)
	if !ok {
		s.fallo(res, fila.Numero, "Segmento '"+segmentoNombre+"' no encontrado")
		return
	}

	temporadaNombre := valor(fila.Temporada)
	temporadaID, ok := catalogo.Resolver(CatalogoTemporada, temporadaNombre)
	if !ok {
		s.fallo(res, fila.Numero, "Temporada '"+temporadaNombre+"' no encontrada")
		return
	}

	permitido, err := s.permisos.PuedeCrearGrupoEnSegmento(ctx, actorID, segmentoID)
	if err != nil {
		s.fallo(res, fila.Numero, "Error verificando permisos: "+err.Error())
		return
	}
	if !permitido {
		s.fallo(res, fila.Numero, DetalleSinPermiso)
		return
	}

	nombre := strings.TrimSpace(valor(fila.NombreGrupo))
	if nombre == "" {
		nombre = segmentoNombre + " 1"
	}

	tokens := ParseMiembros(valor(fila.Miembros))

	if opts.DryRun {
		res.Exito(fila.Numero, fmt.Sprintf("Grupo '%s' válido con %d miembros", nombre, len(tokens)), nil)
		return
	}

	grupo := &domain.Grupo{
		Nombre:      nombre,
		SegmentoID:  segmentoID,
		TemporadaID: temporadaID,
		Activo:      true,
	}
	if err := s.grupos.Create(ctx, grupo); err != nil {
		s.fallo(res, fila.Numero, "Error creando grupo: "+err.Error())
		return
	}

	saga := &sagaFila{}
	saga.registrar("grupo", func(ctx context.Context) error {
		return s.grupos.Delete(ctx, grupo.ID)
	})

	for _, token := range tokens {
		if ctx.Err() != nil {
			break
		}
		s.procesarMiembro(ctx, fila.Numero, grupo.ID, token, saga, res)
	}

	if err := ctx.Err(); err != nil {
		detalle := DetalleRevertido + ": " + err.Error()
		if cerr := saga.compensar(ctx); cerr != nil {
			s.logger.Error("row compensation failed", zap.Int("row", fila.Numero), zap.Error(cerr))
			detalle += " (reversión incompleta: " + cerr.Error() + ")"
		}
		s.fallo(res, fila.Numero, detalle)
		return
	}

	grupoID := grupo.ID
	res.Exito(fila.Numero, DetalleGrupoCreado, &grupoID)
}

func (s *GrupoImportService) procesarMiembro(ctx context.Context, numero int, grupoID uuid.UUID, token TokenMiembro, saga *sagaFila, res *Resultados) {
	usuarioID, err := s.matcher.Buscar(ctx, token)
	if err != nil {
		s.fallo(res, numero, "Error buscando a "+token.NombreCompleto+": "+err.Error())
		return
	}

	if usuarioID == nil {
		usuario := &domain.Usuario{Nombre: token.Nombre, Apellido: token.Apellido}
		if err := s.personas.Create(ctx, usuario); err != nil {
			s.fallo(res, numero, "Error creando a "+token.NombreCompleto+": "+err.Error())
			return
		}
		saga.registrar("usuario "+token.NombreCompleto, func(ctx context.Context) error {
			return s.personas.Delete(ctx, usuario.ID)
		})
		s.asignarRolPorDefecto(ctx, usuario.ID)
		usuarioID = &usuario.ID
	}

	if err := s.grupos.AddMiembro(ctx, grupoID, *usuarioID, token.Rol); err != nil {
		s.fallo(res, numero, "Error agregando a "+token.NombreCompleto+" al grupo: "+err.Error())
	}
}

// asignarRolPorDefecto is best-effort: failures are logged and never reach
// the results.
func (s *GrupoImportService) asignarRolPorDefecto(ctx context.Context, usuarioID uuid.UUID) {
	rol, err := s.personas.FindRolByClave(ctx, s.defaultRoleKey)
	if err == nil {
		err = s.personas.AssignRol(ctx, usuarioID, rol.ID)
	}
	if err != nil {
		s.logger.Warn("default role not assigned",
			zap.String("usuario", usuarioID.String()),
			zap.String("rol", s.defaultRoleKey),
			zap.Error(err),
		)
	}
}

func (s *GrupoImportService) fallo(res *Resultados, numero int, detalle string) {
	s.logger.Debug("import row failed", zap.Int("row", numero), zap.String("detail", detalle))
	res.Fallo(numero, detalle)
}
