package response

import "github.com/jinzhu/copier"

// mustCopy copies same-named fields from a read view. Fields whose types differ are tagged
// `copier:"-"` and filled by hand, so a failure here is a programming error.
func mustCopy(to, from any) {
	if err := copier.Copy(to, from); err != nil {
		panic("response mapping: " + err.Error())
	}
}
