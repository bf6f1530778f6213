package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marquee/api/query"
	"github.com/papercomputeco/marquee/pkg/logger"
	"github.com/papercomputeco/marquee/pkg/recommend"
	testutils "github.com/papercomputeco/marquee/pkg/utils/test"
)

// connect opens an in-memory client session against s.
func connect(ctx context.Context, s *Server) *mcp.ClientSession {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	_, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	Expect(err).NotTo(HaveOccurred())

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(session.Close)

	return session
}

func textOf(res *mcp.CallToolResult) string {
	Expect(res.Content).NotTo(BeEmpty())
	text, ok := res.Content[0].(*mcp.TextContent)
	Expect(ok).To(BeTrue())
	return text.Text
}

var _ = Describe("MCP Server", func() {
	var (
		ctx         context.Context
		recommender *recommend.Recommender
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		recommender, err = recommend.New(recommend.Config{
			Catalog: testutils.NewTestCatalog(),
			Logger:  logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewServer", func() {
		It("returns an error when the recommender is nil", func() {
			_, err := NewServer(Config{Logger: logger.Nop()})
			Expect(err).To(MatchError(ContainSubstring("recommender is required")))
		})

		It("returns an error when the logger is nil", func() {
			_, err := NewServer(Config{Recommender: recommender})
			Expect(err).To(MatchError(ContainSubstring("logger is required")))
		})

		It("serves HTTP once configured", func() {
			s, err := NewServer(Config{Recommender: recommender, Logger: logger.Nop()})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Handler()).NotTo(BeNil())
		})
	})

	Describe("tools", func() {
		var session *mcp.ClientSession

		BeforeEach(func() {
			s, err := NewServer(Config{
				Recommender: recommender,
				Picker:      recommend.NewPicker(11),
				DefaultTopN: 3,
				Logger:      logger.Nop(),
			})
			Expect(err).NotTo(HaveOccurred())
			session = connect(ctx, s)
		})

		It("lists the recommend and surprise tools", func() {
			res, err := session.ListTools(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(res.Tools))
			for _, t := range res.Tools {
				names = append(names, t.Name)
			}
			Expect(names).To(ConsistOf("recommend", "surprise"))
		})

		It("recommends similar movies", func() {
			res, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "recommend",
				Arguments: map[string]any{"query": "matrix", "top_n": 1},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsError).To(BeFalse())

			var out query.Output
			Expect(json.Unmarshal([]byte(textOf(res)), &out)).To(Succeed())
			Expect(out.Match.Title).To(Equal("The Matrix"))
			Expect(out.Recommendations).To(HaveLen(1))
			Expect(out.Recommendations[0].Movie.Title).To(Equal("The Matrix Reloaded"))
		})

		It("uses the configured default count", func() {
			res, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "recommend",
				Arguments: map[string]any{"query": "inception"},
			})
			Expect(err).NotTo(HaveOccurred())

			var out query.Output
			Expect(json.Unmarshal([]byte(textOf(res)), &out)).To(Succeed())
			Expect(out.Count).To(Equal(3))
		})

		It("reports unknown titles as tool errors", func() {
			res, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "recommend",
				Arguments: map[string]any{"query": "no such movie"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsError).To(BeTrue())
			Expect(textOf(res)).To(ContainSubstring("Movie not found"))
		})

		It("reports invalid counts as tool errors", func() {
			res, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "recommend",
				Arguments: map[string]any{"query": "inception", "top_n": -1},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsError).To(BeTrue())
			Expect(textOf(res)).To(ContainSubstring("Invalid request"))
		})

		It("surprises with a random pick", func() {
			res, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "surprise",
				Arguments: map[string]any{},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.IsError).To(BeFalse())

			var out query.Output
			Expect(json.Unmarshal([]byte(textOf(res)), &out)).To(Succeed())
			Expect(out.Surprise).To(BeTrue())
			Expect(out.Count).To(Equal(3))
		})
	})

	It("omits the surprise tool without a picker", func() {
		s, err := NewServer(Config{Recommender: recommender, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())
		session := connect(ctx, s)

		res, err := session.ListTools(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tools).To(HaveLen(1))
		Expect(res.Tools[0].Name).To(Equal("recommend"))
	})
})
