package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neilv/neilsearch/internal/profile"
	"github.com/neilv/neilsearch/internal/vocab"
)

var profileCmd = &cobra.Command{
	Use:   "profile <resume.txt>",
	Short: "Extract and save your candidate profile from a resume",
	Long: "Parses a plain-text resume into a structured candidate profile\n" +
		"(skills, level, role types, preferences) and stores it for scoring.",
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	resumePath := args[0]
	text, err := profile.ReadResumeText(resumePath)
	if err != nil {
		logger.Error("failed to read resume", "path", resumePath, "error", err)
		os.Exit(1)
	}

	extractor := profile.NewExtractor(vocab.Default())
	p := extractor.Extract(text)

	s := openStore(cfg, logger)
	defer s.Close()

	if err := s.SaveProfile(resumePath, p); err != nil {
		logger.Error("failed to save profile", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Profile saved from %s\n\n", resumePath)
	fmt.Printf("  Skills:       %s\n", strings.Join(p.Skills, ", "))
	fmt.Printf("  Level:        %s", p.ExperienceLevel)
	if p.YearsExperience > 0 {
		fmt.Printf(" (%d years)", p.YearsExperience)
	}
	fmt.Println()
	fmt.Printf("  Education:    %s\n", strings.Join(p.Education, ", "))
	fmt.Printf("  Role types:   %s\n", strings.Join(p.RoleTypes, ", "))
	if p.Preferences.Size != "" {
		fmt.Printf("  Company size: %s\n", p.Preferences.Size)
	}
	if len(p.Preferences.Industries) > 0 {
		fmt.Printf("  Industries:   %s\n", strings.Join(p.Preferences.Industries, ", "))
	}
	return nil
}
