package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	domainerrors "github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/infrastructure/logging"
	"github.com/rafabene/mediaranker/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/mediaranker/internal/services"
	"github.com/rafabene/mediaranker/internal/testutil"
)

var _ = Describe("IdentityService", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *services.IdentityService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = testutil.NewDatabase()
		Expect(err).NotTo(HaveOccurred())

		service = services.NewIdentityService(postgres.NewUserRepository(db), logging.NewNopLogger())
	})

	AfterEach(func() {
		testutil.Close(db)
	})

	claim := func(uid string) entities.IdentityClaim {
		return entities.IdentityClaim{
			Provider: "github",
			UID:      uid,
			Name:     "Dan",
			Nickname: "dan",
			Email:    "dan@example.com",
		}
	}

	Describe("Resolve", func() {
		It("cria o usuário na primeira vez", func() {
			user, created, err := service.Resolve(ctx, claim("42"))

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(user.ID).NotTo(BeEmpty())
			Expect(user.Provider).To(Equal("github"))
			Expect(user.UID).To(Equal("42"))
			Expect(user.Email.String()).To(Equal("dan@example.com"))
		})

		It("retorna o mesmo usuário nas próximas vezes", func() {
			first, _, err := service.Resolve(ctx, claim("42"))
			Expect(err).NotTo(HaveOccurred())

			second, created, err := service.Resolve(ctx, claim("42"))
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(second.ID).To(Equal(first.ID))
		})

		It("atualiza nome e email a cada login", func() {
			first, _, err := service.Resolve(ctx, claim("42"))
			Expect(err).NotTo(HaveOccurred())

			changed := claim("42")
			changed.Name = "Daniel"
			changed.Email = "daniel@example.com"
			_, _, err = service.Resolve(ctx, changed)
			Expect(err).NotTo(HaveOccurred())

			reloaded, err := service.GetUser(ctx, first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Name).To(Equal("Daniel"))
			Expect(reloaded.Email.String()).To(Equal("daniel@example.com"))
		})

		It("mesmo uid em provedores diferentes são usuários distintos", func() {
			a, _, err := service.Resolve(ctx, claim("42"))
			Expect(err).NotTo(HaveOccurred())

			other := claim("42")
			other.Provider = "google"
			b, created, err := service.Resolve(ctx, other)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(b.ID).NotTo(Equal(a.ID))
		})

		DescribeTable("rejeita identidade incompleta",
			func(mutate func(*entities.IdentityClaim)) {
				c := claim("42")
				mutate(&c)

				user, _, err := service.Resolve(ctx, c)
				Expect(err).To(MatchError(domainerrors.ErrInvalidClaim))
				Expect(user).To(BeNil())

				var count int64
				Expect(db.Model(&postgres.UserModel{}).Count(&count).Error).To(Succeed())
				Expect(count).To(BeZero())
			},
			Entry("sem uid", func(c *entities.IdentityClaim) { c.UID = "" }),
			Entry("sem provedor", func(c *entities.IdentityClaim) { c.Provider = "" }),
		)

		DescribeTable("aceita email que não é endereço válido e grava sem email",
			func(email string) {
				c := claim("42")
				c.Email = email

				user, created, err := service.Resolve(ctx, c)
				Expect(err).NotTo(HaveOccurred())
				Expect(created).To(BeTrue())
				Expect(user.UID).To(Equal("42"))
				Expect(user.Email.IsZero()).To(BeTrue())

				reloaded, err := service.GetUser(ctx, user.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(reloaded.Email.IsZero()).To(BeTrue())
			},
			Entry("texto qualquer", "not-an-email"),
			Entry("domínio sem ponto", "dan@localhost"),
		)
	})

	Describe("GetUser", func() {
		It("retorna ErrUserNotFound para id desconhecido", func() {
			_, err := service.GetUser(ctx, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})

		It("trata id malformado como ausente", func() {
			_, err := service.GetUser(ctx, "not-a-uuid")
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})
})
