package service

import (
	"context"
	"testing"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

func sampleMember() domain.Member {
	return domain.Member{
		Name:       "Sara",
		Experience: "5 years",
		Position:   "Senior",
		Speciality: "Audit",
		Diploma:    "MSc",
		Projects:   "Acme ERP",
	}
}

func TestMemberService_AddUploadsAttachments(t *testing.T) {
	repo := newStubMemberRepo()
	storage := newStubStorage()
	svc := NewMemberService(repo, storage, nil, discardLogger)

	id, err := svc.Add(context.Background(), ports.CreateMemberInput{
		Member: sampleMember(),
		Files: domain.MemberFiles{
			Certification: upload("cisa.pdf", "cert"),
			CVShort:       domain.LocatorAttachment("https://files/cv.pdf"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := repo.items[id]
	if m.Certification != "mem://members/cisa.pdf" {
		t.Errorf("certification = %q", m.Certification)
	}
	if m.CVShort != "https://files/cv.pdf" {
		t.Errorf("existing locator should pass through, got %q", m.CVShort)
	}
	if m.CVLong != "" {
		t.Errorf("absent attachment should stay empty, got %q", m.CVLong)
	}
	if string(storage.objects["members/cisa.pdf"]) != "cert" {
		t.Error("upload body not stored")
	}
}

func TestMemberService_SameFilenameOverwrites(t *testing.T) {
	repo := newStubMemberRepo()
	storage := newStubStorage()
	svc := NewMemberService(repo, storage, nil, discardLogger)
	ctx := context.Background()

	first, err := svc.Add(ctx, ports.CreateMemberInput{
		Member: sampleMember(),
		Files:  domain.MemberFiles{Certification: upload("cv.pdf", "first")},
	})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := svc.Add(ctx, ports.CreateMemberInput{
		Member: sampleMember(),
		Files:  domain.MemberFiles{Certification: upload("cv.pdf", "second")},
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if repo.items[first].Certification != repo.items[second].Certification {
		t.Errorf("locators differ: %q vs %q", repo.items[first].Certification, repo.items[second].Certification)
	}
	if got := string(storage.objects["members/cv.pdf"]); got != "second" {
		t.Errorf("stored content = %q, want the second upload", got)
	}
}

func TestMemberService_AddRequiresCertification(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo, newStubStorage(), nil, discardLogger)

	_, err := svc.Add(context.Background(), ports.CreateMemberInput{Member: sampleMember()})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("member must not be stored")
	}
}

func TestMemberService_AddRejectsBlankRequiredField(t *testing.T) {
	storage := newStubStorage()
	svc := NewMemberService(newStubMemberRepo(), storage, nil, discardLogger)

	m := sampleMember()
	m.Diploma = ""
	_, err := svc.Add(context.Background(), ports.CreateMemberInput{
		Member: m,
		Files:  domain.MemberFiles{Certification: upload("c.pdf", "x")},
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(storage.puts) != 0 {
		t.Error("nothing should be uploaded for an invalid record")
	}
}

func TestMemberService_UploadFailureAbortsInsert(t *testing.T) {
	repo := newStubMemberRepo()
	storage := newStubStorage()
	storage.putErr = errBackend
	svc := NewMemberService(repo, storage, nil, discardLogger)

	_, err := svc.Add(context.Background(), ports.CreateMemberInput{
		Member: sampleMember(),
		Files:  domain.MemberFiles{Certification: upload("c.pdf", "x")},
	})
	if domain.KindOf(err) != domain.KindRemote {
		t.Fatalf("expected remote error, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("member must not be stored when an upload fails")
	}
}

func TestMemberService_UpdateResolvesOnlyCarriedAttachments(t *testing.T) {
	repo := newStubMemberRepo()
	storage := newStubStorage()
	svc := NewMemberService(repo, storage, newStubCache(), discardLogger)
	ctx := context.Background()

	id, err := svc.Add(ctx, ports.CreateMemberInput{
		Member: sampleMember(),
		Files: domain.MemberFiles{
			Certification: upload("cert.pdf", "c"),
			CVShort:       upload("short.pdf", "s"),
		},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	position := "Manager"
	err = svc.Update(ctx, id, ports.UpdateMemberInput{
		Patch: domain.MemberPatch{Position: &position},
		Files: domain.MemberFiles{CVLong: upload("long.pdf", "l")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	m := repo.items[id]
	if m.Position != "Manager" {
		t.Errorf("position = %q", m.Position)
	}
	if m.CVLong != "mem://members/long.pdf" {
		t.Errorf("cvLong = %q", m.CVLong)
	}
	if m.CVShort != "mem://members/short.pdf" || m.Certification != "mem://members/cert.pdf" {
		t.Errorf("untouched attachments changed: %+v", m)
	}
}

func TestMemberService_UpdateRejectsInvalidEmail(t *testing.T) {
	svc := NewMemberService(newStubMemberRepo(), newStubStorage(), nil, discardLogger)

	bad := "not-an-email"
	err := svc.Update(context.Background(), "member-1", ports.UpdateMemberInput{
		Patch: domain.MemberPatch{Email: &bad},
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
