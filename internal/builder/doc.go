// Package builder drives the container engine through the steps that turn a
// rendered recipe into either an extracted artifact or a running local
// function endpoint.
//
// Build mode runs, strictly in order:
//
//	docker build . -f <recipe> --target builder -t <tag>
//	docker create --name <container> -p 9000:8080 [--env-file F] [--volume V] <tag>
//	docker cp lambda:/opt/app/bootstrap.zip <output>
//	docker rm <container>
//
// Run mode builds the runner target, creates the container the same way and
// then attaches to it with `docker start <container> -a`. While attached, an
// interrupt removes the container and the rendered recipe. A container that
// exits on its own is left in place.
//
// Every step must exit zero before the next one begins. The rendered recipe
// is removed on every exit path. Containers are not removed after a failure
// so they can be inspected.
package builder
