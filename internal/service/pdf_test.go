package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdfapi/internal/config"
	"pdfapi/internal/filestore"
	"pdfapi/internal/model"
	pdfMocks "pdfapi/internal/pdf/mocks"
	"pdfapi/internal/repository"
	repoMocks "pdfapi/internal/repository/mocks"
	"pdfapi/internal/storage"
	storeMocks "pdfapi/internal/storage/mocks"
)

func newFiles(t *testing.T) *filestore.Manager {
	return newFilesWith(t, filestore.StrategyFixed)
}

func newFilesWith(t *testing.T, strategy filestore.Strategy) *filestore.Manager {
	t.Helper()
	fm, err := filestore.New(config.FilesConfig{
		OutputDir:  filepath.Join(t.TempDir(), "out"),
		StagingDir: filepath.Join(t.TempDir(), "stage"),
		Strategy:   string(strategy),
	})
	require.NoError(t, err)
	return fm
}

func protectedKey(k string) bool {
	return strings.HasPrefix(k, "outputs/protected_r_")
}

func outputs(t *testing.T, fm *filestore.Manager) []string {
	t.Helper()
	des, err := os.ReadDir(fm.OutputDir())
	require.NoError(t, err)
	var names []string
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}

func file(name, content string) File {
	return File{Filename: name, Content: strings.NewReader(content)}
}

func TestPDFService_Merge(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path with storage and repository", func(t *testing.T) {
		fm := newFiles(t)
		proc := new(pdfMocks.MockProcessor)
		repo := new(repoMocks.MockOutputRepository)
		store := new(storeMocks.MockStorage)
		svc := NewPDFService(fm, proc, zerolog.Nop(), WithRepository(repo), WithStorage(store, time.Minute))

		proc.On("Merge", ctx, mock.MatchedBy(func(in []io.ReadSeeker) bool { return len(in) == 2 }), mock.Anything).
			Return([]byte("merged-bytes"), nil)
		store.On("Put", ctx, "outputs/merged_a.pdf", mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.Size == 12 && opt.ContentType == model.MediaTypePDF && opt.Metadata["operation"] == OpMerge
		})).Return(storage.ObjectInfo{Key: "outputs/merged_a.pdf", Size: 12}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(rec *model.OutputRecord) bool {
			return rec.Name == "merged_a.pdf" && rec.Operation == OpMerge && rec.SourceFilename == "a.pdf"
		})).Return(&model.OutputRecord{ID: "db-id", Name: "merged_a.pdf", Operation: OpMerge}, nil)

		rec, err := svc.Merge(ctx, MergeRequest{Files: []File{file("a.pdf", "A"), file("b.pdf", "B")}})
		require.NoError(t, err)
		assert.Equal(t, "db-id", rec.ID)

		b, err := os.ReadFile(filepath.Join(fm.OutputDir(), "merged_a.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "merged-bytes", string(b))

		proc.AssertExpectations(t)
		repo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("needs two documents", func(t *testing.T) {
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(newFiles(t), proc, zerolog.Nop())

		rec, err := svc.Merge(ctx, MergeRequest{Files: []File{file("a.pdf", "A")}})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, rec)
		proc.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("processor failure leaves no output", func(t *testing.T) {
		fm := newFiles(t)
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(fm, proc, zerolog.Nop())

		proc.On("Merge", ctx, mock.Anything, mock.Anything).Return(nil, model.ErrUpstream)

		rec, err := svc.Merge(ctx, MergeRequest{Files: []File{file("a.pdf", "A"), file("b.pdf", "B")}})
		assert.ErrorIs(t, err, model.ErrUpstream)
		assert.Nil(t, rec)
		assert.Empty(t, outputs(t, fm))
	})
}

func TestPDFService_Split(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		fm := newFiles(t)
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(fm, proc, zerolog.Nop())

		proc.On("PageCount", ctx, mock.Anything).Return(3, nil)
		proc.On("Split", ctx, mock.Anything, mock.Anything, 0, 1).Return([]byte("pages"), nil)

		rec, err := svc.Split(ctx, SplitRequest{File: file("doc.pdf", "x"), StartPage: 0, EndPage: 1, OutputName: "first-two"})
		require.NoError(t, err)
		assert.Equal(t, "first-two.pdf", rec.Name)
		assert.Equal(t, OpSplit, rec.Operation)
		proc.AssertExpectations(t)
	})

	t.Run("invalid range fails before any write", func(t *testing.T) {
		fm := newFiles(t)
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(fm, proc, zerolog.Nop())

		proc.On("PageCount", ctx, mock.Anything).Return(3, nil)

		for _, r := range [][2]int{{2, 3}, {2, 1}, {-1, 0}} {
			rec, err := svc.Split(ctx, SplitRequest{File: file("doc.pdf", "x"), StartPage: r[0], EndPage: r[1]})
			assert.ErrorIs(t, err, model.ErrInvalidRange)
			assert.Nil(t, rec)
		}
		assert.Empty(t, outputs(t, fm))
		proc.AssertNotCalled(t, "Split", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed document", func(t *testing.T) {
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(newFiles(t), proc, zerolog.Nop())

		proc.On("PageCount", ctx, mock.Anything).Return(0, model.ErrInvalidInput)

		_, err := svc.Split(ctx, SplitRequest{File: file("doc.pdf", "x"), EndPage: 1})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestPDFService_RotateWatermarkProtect(t *testing.T) {
	ctx := context.Background()

	t.Run("rotate validates degrees", func(t *testing.T) {
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(newFiles(t), proc, zerolog.Nop())

		_, err := svc.Rotate(ctx, RotateRequest{File: file("a.pdf", "x"), Degrees: 45})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		proc.AssertExpectations(t)
	})

	t.Run("rotate", func(t *testing.T) {
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(newFiles(t), proc, zerolog.Nop())

		proc.On("Rotate", ctx, mock.Anything, mock.Anything, 180, []int{0, 2}).Return([]byte("r"), nil)

		rec, err := svc.Rotate(ctx, RotateRequest{File: file("a.pdf", "x"), Degrees: 180, Pages: []int{0, 2}})
		require.NoError(t, err)
		assert.Equal(t, "rotated_a.pdf", rec.Name)
		proc.AssertExpectations(t)
	})

	t.Run("watermark requires text", func(t *testing.T) {
		svc := NewPDFService(newFiles(t), new(pdfMocks.MockProcessor), zerolog.Nop())
		_, err := svc.Watermark(ctx, WatermarkRequest{File: file("a.pdf", "x")})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("watermark", func(t *testing.T) {
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(newFiles(t), proc, zerolog.Nop())
		proc.On("Watermark", ctx, mock.Anything, mock.Anything, "DRAFT").Return([]byte("w"), nil)

		rec, err := svc.Watermark(ctx, WatermarkRequest{File: file("a.pdf", "x"), Text: "DRAFT"})
		require.NoError(t, err)
		assert.Equal(t, "watermarked_a.pdf", rec.Name)
	})

	t.Run("protect uses default naming", func(t *testing.T) {
		fm := newFiles(t)
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(fm, proc, zerolog.Nop())
		proc.On("Protect", ctx, mock.Anything, mock.Anything, "", "").Return([]byte("encrypted"), nil)

		rec, err := svc.Protect(ctx, ProtectRequest{File: file("report.pdf", "x")})
		require.NoError(t, err)
		assert.Equal(t, "protected_report.pdf", rec.Name)
		assert.Equal(t, "report.pdf", rec.SourceFilename)
		assert.Equal(t, []string{"protected_report.pdf"}, outputs(t, fm))
	})

	t.Run("unsafe output name rejected before processing", func(t *testing.T) {
		proc := new(pdfMocks.MockProcessor)
		svc := NewPDFService(newFiles(t), proc, zerolog.Nop())

		_, err := svc.Protect(ctx, ProtectRequest{File: file("report.pdf", "x"), OutputName: "../"})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		proc.AssertExpectations(t)
	})
}

func TestPDFService_Rollback(t *testing.T) {
	ctx := context.Background()

	t.Run("repository error removes output", func(t *testing.T) {
		fm := newFilesWith(t, filestore.StrategyUnique)
		proc := new(pdfMocks.MockProcessor)
		repo := new(repoMocks.MockOutputRepository)
		svc := NewPDFService(fm, proc, zerolog.Nop(), WithRepository(repo))

		proc.On("Protect", ctx, mock.Anything, mock.Anything, "pw", "").Return([]byte("enc"), nil)
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.Protect(ctx, ProtectRequest{File: file("r.pdf", "x"), UserPassword: "pw"})
		assert.ErrorContains(t, err, "db save failed: db fail")
		assert.Empty(t, outputs(t, fm))
	})

	t.Run("repository error deletes mirrored object", func(t *testing.T) {
		fm := newFilesWith(t, filestore.StrategyUnique)
		proc := new(pdfMocks.MockProcessor)
		repo := new(repoMocks.MockOutputRepository)
		store := new(storeMocks.MockStorage)
		svc := NewPDFService(fm, proc, zerolog.Nop(), WithRepository(repo), WithStorage(store, time.Minute))

		proc.On("Protect", ctx, mock.Anything, mock.Anything, "", "").Return([]byte("enc"), nil)
		store.On("Put", ctx, mock.MatchedBy(protectedKey), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		store.On("Delete", ctx, mock.MatchedBy(protectedKey)).Return(errors.New("delete fail"))

		_, err := svc.Protect(ctx, ProtectRequest{File: file("r.pdf", "x")})
		assert.ErrorContains(t, err, "db save failed: db fail")
		assert.ErrorContains(t, err, "rollback failed")
		assert.Empty(t, outputs(t, fm))
		store.AssertExpectations(t)
	})

	t.Run("mirror error removes output", func(t *testing.T) {
		fm := newFilesWith(t, filestore.StrategyUnique)
		proc := new(pdfMocks.MockProcessor)
		repo := new(repoMocks.MockOutputRepository)
		store := new(storeMocks.MockStorage)
		svc := NewPDFService(fm, proc, zerolog.Nop(), WithRepository(repo), WithStorage(store, time.Minute))

		proc.On("Protect", ctx, mock.Anything, mock.Anything, "", "").Return([]byte("enc"), nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("s3 down"))

		_, err := svc.Protect(ctx, ProtectRequest{File: file("r.pdf", "x")})
		assert.ErrorContains(t, err, "mirror output: s3 down")
		assert.Empty(t, outputs(t, fm))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("fixed name rewrite replaces the output", func(t *testing.T) {
		fm := newFiles(t)
		proc := new(pdfMocks.MockProcessor)
		repo := new(repoMocks.MockOutputRepository)
		svc := NewPDFService(fm, proc, zerolog.Nop(), WithRepository(repo))

		proc.On("Protect", ctx, mock.Anything, mock.Anything, "a", "").Return([]byte("user-A-secret"), nil).Once()
		proc.On("Protect", ctx, mock.Anything, mock.Anything, "b", "").Return([]byte("user-B-data"), nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(&model.OutputRecord{ID: "row", Name: "protected_report.pdf"}, nil).Twice()

		_, err := svc.Protect(ctx, ProtectRequest{File: file("report.pdf", "x"), UserPassword: "a"})
		require.NoError(t, err)
		_, err = svc.Protect(ctx, ProtectRequest{File: file("report.pdf", "y"), UserPassword: "b"})
		require.NoError(t, err)

		assert.Equal(t, []string{"protected_report.pdf"}, outputs(t, fm))
		b, err := os.ReadFile(filepath.Join(fm.OutputDir(), "protected_report.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "user-B-data", string(b))
		repo.AssertExpectations(t)
	})

	t.Run("fixed name keeps the last write when the record fails", func(t *testing.T) {
		fm := newFiles(t)
		proc := new(pdfMocks.MockProcessor)
		repo := new(repoMocks.MockOutputRepository)
		store := new(storeMocks.MockStorage)
		svc := NewPDFService(fm, proc, zerolog.Nop(), WithRepository(repo), WithStorage(store, time.Minute))

		proc.On("Protect", ctx, mock.Anything, mock.Anything, "a", "").Return([]byte("user-A-secret"), nil).Once()
		proc.On("Protect", ctx, mock.Anything, mock.Anything, "b", "").Return([]byte("user-B-data"), nil).Once()
		store.On("Put", ctx, "outputs/protected_report.pdf", mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil).Twice()
		repo.On("Create", ctx, mock.Anything).Return(&model.OutputRecord{ID: "row", Name: "protected_report.pdf"}, nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("duplicate key value violates unique constraint")).Once()

		_, err := svc.Protect(ctx, ProtectRequest{File: file("report.pdf", "x"), UserPassword: "a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"protected_report.pdf"}, outputs(t, fm))

		_, err = svc.Protect(ctx, ProtectRequest{File: file("report.pdf", "y"), UserPassword: "b"})
		assert.ErrorContains(t, err, "db save failed: duplicate key")
		assert.NotContains(t, err.Error(), "rollback failed")

		assert.Equal(t, []string{"protected_report.pdf"}, outputs(t, fm))
		b, err := os.ReadFile(filepath.Join(fm.OutputDir(), "protected_report.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "user-B-data", string(b))
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPDFService_Get(t *testing.T) {
	ctx := context.Background()
	fm := newFiles(t)
	_, err := fm.WriteOutputBytes(ctx, "a.pdf", []byte("abc"))
	require.NoError(t, err)

	t.Run("without repository", func(t *testing.T) {
		svc := NewPDFService(fm, nil, zerolog.Nop())
		rec, err := svc.Get(ctx, "a.pdf")
		require.NoError(t, err)
		assert.Equal(t, int64(3), rec.Size)
	})

	t.Run("traversal is not found", func(t *testing.T) {
		svc := NewPDFService(fm, nil, zerolog.Nop())
		_, err := svc.Get(ctx, "../a.pdf")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("enriched from repository", func(t *testing.T) {
		repo := new(repoMocks.MockOutputRepository)
		svc := NewPDFService(fm, nil, zerolog.Nop(), WithRepository(repo))
		repo.On("FindByName", ctx, "a.pdf").Return(&model.OutputRecord{ID: "id", Name: "a.pdf", Operation: OpSplit}, nil)

		rec, err := svc.Get(ctx, "a.pdf")
		require.NoError(t, err)
		assert.Equal(t, OpSplit, rec.Operation)
		assert.Equal(t, int64(3), rec.Size)
		assert.NotEmpty(t, rec.StoragePath)
	})

	t.Run("unrecorded file still resolves", func(t *testing.T) {
		repo := new(repoMocks.MockOutputRepository)
		svc := NewPDFService(fm, nil, zerolog.Nop(), WithRepository(repo))
		repo.On("FindByName", ctx, "a.pdf").Return(nil, sql.ErrNoRows)

		rec, err := svc.Get(ctx, "a.pdf")
		require.NoError(t, err)
		assert.Equal(t, "a.pdf", rec.Name)
	})
}

func TestPDFService_ListAndLink(t *testing.T) {
	ctx := context.Background()
	fm := newFiles(t)
	_, err := fm.WriteOutputBytes(ctx, "a.pdf", []byte("abc"))
	require.NoError(t, err)

	t.Run("list requires repository", func(t *testing.T) {
		_, err := NewPDFService(fm, nil, zerolog.Nop()).List(ctx, 10, 0)
		assert.ErrorIs(t, err, ErrListingUnavailable)
	})

	t.Run("list applies defaults", func(t *testing.T) {
		repo := new(repoMocks.MockOutputRepository)
		repo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.OutputRecord]{Items: []model.OutputRecord{{Name: "a.pdf"}}, Total: 1}, nil)

		res, err := NewPDFService(fm, nil, zerolog.Nop(), WithRepository(repo)).List(ctx, 0, -5)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		repo.AssertExpectations(t)
	})

	t.Run("link requires storage", func(t *testing.T) {
		_, err := NewPDFService(fm, nil, zerolog.Nop()).Link(ctx, "a.pdf")
		assert.ErrorIs(t, err, ErrLinksUnavailable)
	})

	t.Run("link presigns resolved output", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		store.On("PresignGet", ctx, "outputs/a.pdf", 5*time.Minute).Return("https://s3/outputs/a.pdf?sig", nil)

		url, err := NewPDFService(fm, nil, zerolog.Nop(), WithStorage(store, 5*time.Minute)).Link(ctx, "a.pdf")
		require.NoError(t, err)
		assert.Equal(t, "https://s3/outputs/a.pdf?sig", url)
	})

	t.Run("link for missing output", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		_, err := NewPDFService(fm, nil, zerolog.Nop(), WithStorage(store, time.Minute)).Link(ctx, "nope.pdf")
		assert.ErrorIs(t, err, model.ErrNotFound)
		store.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})
}
