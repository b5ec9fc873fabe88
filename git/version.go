package git

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// HeadSHA returns the commit SHA at HEAD of the repository containing
// srcDir, for use as a build version label. A source directory that is
// not under version control is an error and aborts the deployment.
func HeadSHA(srcDir string) (sha string, err error) {
	repo, err := git.PlainOpenWithOptions(srcDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("cannot open git repository in %s: %v", srcDir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("cannot resolve HEAD of %s: %v", srcDir, err)
	}
	return head.Hash().String(), nil
}
