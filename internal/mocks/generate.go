package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchDataSource --dir ../usecase --output usecase --outpkg usecasemock --filename match_data_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/corpus --output domain/corpus --outpkg corpusmock --filename repository_mock.go
